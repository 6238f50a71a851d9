// If you are AI: This file wires the monitor node: one spider Task per
// configured host feeding a shared Aggregator, exposed over HTTP as /info.

package node

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"xlive/internal/config"
	"xlive/internal/monitor"
)

// MonitorNode runs the fabric-wide snapshot aggregator.
type MonitorNode struct {
	hosts      []config.Host
	agg        *monitor.Aggregator
	httpServer *http.Server
	log        zerolog.Logger
}

// NewMonitorNode loads the host list from cfg.ConfigPath and prepares the
// aggregator and its HTTP surface.
func NewMonitorNode(cfg config.MonitorFlags, logger zerolog.Logger) (*MonitorNode, error) {
	log := logger.With().Str("node", "monitor").Logger()

	mcfg, err := config.LoadMonitorConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}

	agg := monitor.NewAggregator(log)

	mux := http.NewServeMux()
	monitor.NewService(agg).RegisterRoutes(mux)

	return &MonitorNode{
		hosts:      mcfg.Hosts,
		agg:        agg,
		httpServer: &http.Server{Addr: config.MonitorHTTPAddr, Handler: mux},
		log:        log,
	}, nil
}

// Run starts one spider task per configured host and serves /info until ctx
// is done.
func (m *MonitorNode) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, h := range m.hosts {
		host := h
		task := monitor.NewTask(host.Name, "http://"+host.Addr, m.agg, m.log)
		g.Go(func() error { return task.Run(ctx) })
	}
	g.Go(func() error {
		err := m.httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	m.log.Info().Int("hosts", len(m.hosts)).Str("http_addr", config.MonitorHTTPAddr).Msg("monitor listening")
	return g.Wait()
}

// Shutdown stops the HTTP surface.
func (m *MonitorNode) Shutdown(ctx context.Context) error {
	return m.httpServer.Shutdown(ctx)
}
