// If you are AI: This file is the monitor's read surface, grounded on
// original_source/xlive-monitor/src/http_service.rs: GET /info returns the
// merged {host -> {channel -> subscriberCount}} snapshot.

package monitor

import (
	"encoding/json"
	"net/http"
)

// Service exposes an Aggregator's merged view over HTTP.
type Service struct {
	agg *Aggregator
}

// NewService wraps agg for HTTP registration.
func NewService(agg *Aggregator) *Service {
	return &Service{agg: agg}
}

// RegisterRoutes wires GET /info onto mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/info", s.handleInfo)
}

func (s *Service) handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.agg.Snapshot()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
