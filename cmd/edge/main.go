// If you are AI: This is the edge binary's entrypoint: the client-facing
// delivery tier (realtime-streaming ingress/egress plus HTTP-FLV/WS-FLV).

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

	cfg, err := config.ParseEdge(os.Args[1:])
	if err != nil {
		bootLog.Fatal().Err(err).Msg("parse flags")
	}
	log := logging.New(logging.Format(cfg.LogFormat))

	edge, err := node.NewEdge(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build edge")
	}

	shutdown := node.NewShutdownHandler(edge, context.Background())

	go func() {
		if err := edge.Run(shutdown.Context()); err != nil {
			log.Error().Err(err).Msg("edge run")
			os.Exit(1)
		}
	}()

	if err := shutdown.Wait(); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}

	log.Info().Msg("edge shut down cleanly")
}
