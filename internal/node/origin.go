// If you are AI: This file wires the origin node: a framed-transport
// listener for publishers and upstream-pulling peers, a registry heartbeat
// for every channel it hosts, and the HTTP /monitor + /healthz surface.
// Origin never pulls — it has no Puller, so a directory miss fails fast.

package node

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"xlive/internal/channel"
	"xlive/internal/config"
	"xlive/internal/heartbeat"
	"xlive/internal/manager"
	"xlive/internal/svc/health"
	"xlive/internal/svc/snapshot"
)

// fullGOPPolicy is the process-wide GOP-replay policy named in spec §4.2.
// Every node type replays the current GOP's key-frame and every frame cached
// after it to new subscribers.
const fullGOPPolicy = true

// Origin runs the publisher-facing tier of the fabric.
type Origin struct {
	mgr        *manager.Manager
	session    *SessionServer
	httpServer *http.Server
	announcer  *heartbeat.Announcer
	log        zerolog.Logger
}

// NewOrigin builds an Origin from parsed CLI flags. If cfg.Register is
// empty, the heartbeat is disabled and channels never appear in the registry.
func NewOrigin(cfg config.OriginConfig, logger zerolog.Logger) (*Origin, error) {
	log := logger.With().Str("node", "origin").Logger()

	var announcer *heartbeat.Announcer
	if cfg.Register != "" {
		a, err := heartbeat.Dial(cfg.Register)
		if err != nil {
			return nil, fmt.Errorf("origin: dial registry: %w", err)
		}
		announcer = a
	}

	mgr := manager.New(nil, log)

	session, err := NewSessionServer(config.OriginInterNodeAddr, mgr, fullGOPPolicy, log)
	if err != nil {
		return nil, fmt.Errorf("origin: listen %s: %w", config.OriginInterNodeAddr, err)
	}
	if announcer != nil {
		session.WithAnnouncer(func(name string) channel.Announcer { return announcer })
	}

	mux := http.NewServeMux()
	health.New().RegisterRoutes(mux)
	snapshot.New(mgr).RegisterRoutes(mux)

	return &Origin{
		mgr:        mgr,
		session:    session,
		httpServer: &http.Server{Addr: config.OriginHTTPAddr, Handler: mux},
		announcer:  announcer,
		log:        log,
	}, nil
}

// Run serves the inter-node listener and the HTTP surface until ctx is done.
func (o *Origin) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.session.Serve(ctx) })
	g.Go(func() error {
		err := o.httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	o.log.Info().Str("session_addr", config.OriginInterNodeAddr).Str("http_addr", config.OriginHTTPAddr).Msg("origin listening")
	return g.Wait()
}

// Shutdown stops the HTTP surface and closes the registry connection.
func (o *Origin) Shutdown(ctx context.Context) error {
	err := o.httpServer.Shutdown(ctx)
	if o.announcer != nil {
		o.announcer.Close()
	}
	return err
}
