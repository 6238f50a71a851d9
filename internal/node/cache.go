// If you are AI: This file wires the cache node: a framed-transport
// listener that serves edges, backed by a Puller that lazily dials origin
// (directly or via registry lookup) on a directory miss.

package node

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"xlive/internal/config"
	"xlive/internal/manager"
	"xlive/internal/svc/health"
	"xlive/internal/svc/snapshot"
	"xlive/internal/upstream"
)

// Cache runs the fan-out tier between origin and edges.
type Cache struct {
	mgr        *manager.Manager
	session    *SessionServer
	httpServer *http.Server
	log        zerolog.Logger
}

// NewCache builds a Cache from parsed CLI flags. Registry lookup is
// preferred over the direct origin fallback when cfg.Register is set.
func NewCache(cfg config.CacheConfig, logger zerolog.Logger) (*Cache, error) {
	log := logger.With().Str("node", "cache").Logger()

	policy := upstream.Direct(cfg.Origin)
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

	session, err := NewSessionServer(config.CacheInterNodeAddr, mgr, fullGOPPolicy, log)
	if err != nil {
		return nil, fmt.Errorf("cache: listen %s: %w", config.CacheInterNodeAddr, err)
	}

	mux := http.NewServeMux()
	health.New().RegisterRoutes(mux)
	snapshot.New(mgr).RegisterRoutes(mux)

	return &Cache{
		mgr:        mgr,
		session:    session,
		httpServer: &http.Server{Addr: config.CacheHTTPAddr, Handler: mux},
		log:        log,
	}, nil
}

// Run serves the inter-node listener and the HTTP surface until ctx is done.
func (c *Cache) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.session.Serve(ctx) })
	g.Go(func() error {
		err := c.httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	c.log.Info().Str("session_addr", config.CacheInterNodeAddr).Str("http_addr", config.CacheHTTPAddr).Msg("cache listening")
	return g.Wait()
}

// Shutdown stops the HTTP surface.
func (c *Cache) Shutdown(ctx context.Context) error {
	return c.httpServer.Shutdown(ctx)
}
