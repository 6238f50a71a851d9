// If you are AI: This is the origin binary's entrypoint: the publisher-facing
// tier of the fabric, with an optional registry heartbeat.

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

	cfg, err := config.ParseOrigin(os.Args[1:])
	if err != nil {
		bootLog.Fatal().Err(err).Msg("parse flags")
	}
	log := logging.New(logging.Format(cfg.LogFormat))

	origin, err := node.NewOrigin(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build origin")
	}

	shutdown := node.NewShutdownHandler(origin, context.Background())

	go func() {
		if err := origin.Run(shutdown.Context()); err != nil {
			log.Error().Err(err).Msg("origin run")
			os.Exit(1)
		}
	}()

	if err := shutdown.Wait(); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}

	log.Info().Msg("origin shut down cleanly")
}
