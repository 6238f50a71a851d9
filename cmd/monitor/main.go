// If you are AI: This is the monitor binary's entrypoint: polls every
// configured host's /monitor endpoint and serves the merged view at /info.

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

	cfg, err := config.ParseMonitor(os.Args[1:])
	if err != nil {
		bootLog.Fatal().Err(err).Msg("parse flags")
	}
	log := logging.New(logging.Format(cfg.LogFormat))

	mon, err := node.NewMonitorNode(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build monitor")
	}

	shutdown := node.NewShutdownHandler(mon, context.Background())

	go func() {
		if err := mon.Run(shutdown.Context()); err != nil {
			log.Error().Err(err).Msg("monitor run")
			os.Exit(1)
		}
	}()

	if err := shutdown.Wait(); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}

	log.Info().Msg("monitor shut down cleanly")
}
