// If you are AI: This file wires the registry node: the UDP soft-state
// directory server plus its read-only HTTP surface (/servers_info,
// /channels_info).

package node

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"xlive/internal/config"
	"xlive/internal/registry"
)

// Registry runs the channel-directory tier.
type Registry struct {
	server     *registry.Server
	httpServer *http.Server
	log        zerolog.Logger
}

// NewRegistry binds the fixed UDP and HTTP registry addresses.
func NewRegistry(logger zerolog.Logger) (*Registry, error) {
	log := logger.With().Str("node", "registry").Logger()

	server, err := registry.Listen(config.RegistryUDPAddr, log)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	return &Registry{
		server:     server,
		httpServer: &http.Server{Addr: config.RegistryHTTPAddr, Handler: mux},
		log:        log,
	}, nil
}

// Run serves the UDP directory and HTTP surface until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.server.Run(ctx) })
	g.Go(func() error {
		err := r.httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	r.log.Info().Str("udp_addr", config.RegistryUDPAddr).Str("http_addr", config.RegistryHTTPAddr).Msg("registry listening")
	return g.Wait()
}

// Shutdown stops the HTTP surface; the UDP server stops via ctx cancellation.
func (r *Registry) Shutdown(ctx context.Context) error {
	return r.httpServer.Shutdown(ctx)
}
