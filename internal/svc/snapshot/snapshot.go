// If you are AI: This file implements the per-node GET /monitor endpoint
// (spec §6): a node's current {channel -> subscriberCount} view, polled by
// the monitor aggregator.

package snapshot

import (
	"encoding/json"
	"net/http"

	"xlive/internal/manager"
)

// Service exposes a Manager's directory snapshot over HTTP.
type Service struct {
	mgr *manager.Manager
}

// New creates a snapshot service backed by mgr.
func New(mgr *manager.Manager) *Service {
	return &Service{mgr: mgr}
}

// RegisterRoutes wires GET /monitor onto mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/monitor", s.handleMonitor)
}

func (s *Service) handleMonitor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.mgr.Snapshot()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
