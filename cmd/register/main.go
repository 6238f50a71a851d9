// If you are AI: This is the registry binary's entrypoint: the UDP
// soft-state channel directory plus its read-only HTTP surface.

package main

import (
	"context"
	"os"

	"xlive/internal/config"
	"xlive/internal/logging"
	"xlive/internal/node"
)

func main() {
	bootLog := logging.New(logging.Console)

	cfg, err := config.ParseRegister(os.Args[1:])
	if err != nil {
		bootLog.Fatal().Err(err).Msg("parse flags")
	}
	log := logging.New(logging.Format(cfg.LogFormat))

	registry, err := node.NewRegistry(log)
	if err != nil {
		log.Fatal().Err(err).Msg("build registry")
	}

	shutdown := node.NewShutdownHandler(registry, context.Background())

	go func() {
		if err := registry.Run(shutdown.Context()); err != nil {
			log.Error().Err(err).Msg("registry run")
			os.Exit(1)
		}
	}()

	if err := shutdown.Wait(); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}

	log.Info().Msg("registry shut down cleanly")
}
