// If you are AI: This file wires the edge node: a framed-transport listener
// for local publishers/players (spec's realtime-streaming bind address) plus
// the client-facing HTTP-FLV and WebSocket-FLV egress adapters, backed by a
// Puller that resolves upstream through registry, cache, or origin in that
// preference order.

package node

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"xlive/internal/channel"
	"xlive/internal/config"
	"xlive/internal/manager"
	"xlive/internal/svc/health"
	"xlive/internal/svc/httpflv"
	"xlive/internal/svc/snapshot"
	"xlive/internal/svc/wsflv"
	"xlive/internal/upstream"
)

// Edge runs the client-facing delivery tier.
type Edge struct {
	mgr        *manager.Manager
	session    *SessionServer
	httpServer *http.Server
	log        zerolog.Logger
}

// NewEdge builds an Edge from parsed CLI flags. Upstream resolution prefers
// registry, then cache, then origin, per spec §6's CLI table.
func NewEdge(cfg config.EdgeConfig, logger zerolog.Logger) (*Edge, error) {
	log := logger.With().Str("node", "edge").Logger()

	policy := upstream.Direct(cfg.Origin)
	if cfg.Cache != "" {
		policy = upstream.Direct(cfg.Cache)
	}
	if cfg.Register != "" {
		policy = upstream.ViaRegistry(cfg.Register)
	}

	var mgr *manager.Manager
	puller := upstream.New(policy, fullGOPPolicy, log, func(name string) {
		if mgr != nil {
			mgr.Release(name)
		}
	})
	mgr = manager.New(puller.Pull, log)

	session, err := NewSessionServer(cfg.Bind, mgr, fullGOPPolicy, log)
	if err != nil {
		return nil, fmt.Errorf("edge: listen %s: %w", cfg.Bind, err)
	}
	session.WithForwarder(func(name string) channel.UpstreamForwarder {
		return upstream.NewForwarder(policy, name)
	})

	mux := http.NewServeMux()
	health.New().RegisterRoutes(mux)
	snapshot.New(mgr).RegisterRoutes(mux)
	httpflv.NewService(mgr, log).RegisterRoutes(mux)
	wsflv.NewService(mgr, log).RegisterRoutes(mux)

	return &Edge{
		mgr:        mgr,
		session:    session,
		httpServer: &http.Server{Addr: config.EdgeHTTPAddr, Handler: mux},
		log:        log,
	}, nil
}

// Run serves the realtime listener and the client-facing HTTP surface until
// ctx is done.
func (e *Edge) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.session.Serve(ctx) })
	g.Go(func() error {
		err := e.httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	e.log.Info().Str("session_addr", e.session.Addr().String()).Str("http_addr", config.EdgeHTTPAddr).Msg("edge listening")
	return g.Wait()
}

// Shutdown stops the HTTP surface.
func (e *Edge) Shutdown(ctx context.Context) error {
	return e.httpServer.Shutdown(ctx)
}
