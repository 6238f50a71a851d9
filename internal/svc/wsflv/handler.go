// If you are AI: This file implements the supplemental WebSocket-FLV egress
// path (SPEC_FULL §12): GET /ws/{channel} upgrades to a WebSocket and pushes
// the same FLV tags as the HTTP-FLV handler, one binary message per tag. No
// FLV file header is sent; the first message is the first tag.

package wsflv

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"xlive/internal/manager"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler serves WebSocket-FLV egress for channels known to a Manager.
type Handler struct {
	mgr *manager.Manager
	log zerolog.Logger
}

// NewHandler creates a WebSocket-FLV handler backed by mgr.
func NewHandler(mgr *manager.Manager, logger zerolog.Logger) *Handler {
	return &Handler{mgr: mgr, log: logger.With().Str("component", "wsflv").Logger()}
}

// RegisterRoutes wires GET /ws/{channel} onto mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/", h.serveWS)
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/ws/")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	res, err := h.mgr.Join(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Str("channel", name).Msg("websocket upgrade failed")
		return
	}

	sub := NewSubscriber(conn, res.Channel.Bus(), res.Subscriber)
	defer sub.Close()

	if res.Kind == manager.Local {
		if snap, ok := res.Channel.InitData(); ok {
			if err := sub.WriteReplay(snap.Frames); err != nil {
				return
			}
		}
	}

	if err := sub.StreamLive(r.Context()); err != nil {
		h.log.Debug().Err(err).Str("channel", name).Msg("websocket subscriber disconnected")
	}
}
