// If you are AI: This file provides WebSocket-FLV service integration for a
// node's main HTTP mux.

package wsflv

import (
	"net/http"

	"github.com/rs/zerolog"

	"xlive/internal/manager"
)

// Service wires the WebSocket-FLV handler into a node's HTTP server.
type Service struct {
	handler *Handler
}

// NewService creates a new WebSocket-FLV service backed by mgr.
func NewService(mgr *manager.Manager, logger zerolog.Logger) *Service {
	return &Service{handler: NewHandler(mgr, logger)}
}

// RegisterRoutes registers WebSocket-FLV routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}
