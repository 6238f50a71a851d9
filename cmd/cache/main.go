// If you are AI: This is the cache binary's entrypoint: the fan-out tier
// between origin and edges.

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

	cfg, err := config.ParseCache(os.Args[1:])
	if err != nil {
		bootLog.Fatal().Err(err).Msg("parse flags")
	}
	log := logging.New(logging.Format(cfg.LogFormat))

	cache, err := node.NewCache(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build cache")
	}

	shutdown := node.NewShutdownHandler(cache, context.Background())

	go func() {
		if err := cache.Run(shutdown.Context()); err != nil {
			log.Error().Err(err).Msg("cache run")
			os.Exit(1)
		}
	}()

	if err := shutdown.Wait(); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}

	log.Info().Msg("cache shut down cleanly")
}
