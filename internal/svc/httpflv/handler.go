// If you are AI: This file implements the HTTP-FLV egress handler (spec
// §6): GET /{channel}.flv joins the named channel and streams its replay
// snapshot followed by the live broadcast as FLV tags.

package httpflv

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"xlive/internal/manager"
)

// Handler serves HTTP-FLV egress for channels known to a Manager.
type Handler struct {
	mgr *manager.Manager
	log zerolog.Logger
}

// NewHandler creates an HTTP-FLV handler backed by mgr.
func NewHandler(mgr *manager.Manager, logger zerolog.Logger) *Handler {
	return &Handler{mgr: mgr, log: logger.With().Str("component", "httpflv").Logger()}
}

// RegisterRoutes wires the handler onto mux. Non-.flv paths 404, matching
// spec.md §6 ("Non-.flv paths return 404").
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ".flv") {
			http.NotFound(w, r)
			return
		}
		h.serveFLV(w, r)
	})
}

func (h *Handler) serveFLV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".flv")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	res, err := h.mgr.Join(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "video/x-flv")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub := NewSubscriber(w, res.Channel.Bus(), res.Subscriber)
	defer sub.Close()

	if err := sub.WriteFileHeader(); err != nil {
		return
	}
	flusher.Flush()

	// Local joins have a cache snapshot to replay before the live bus; an
	// Origin join's upstream delivers sequence headers and GOP itself.
	if res.Kind == manager.Local {
		if snap, ok := res.Channel.InitData(); ok {
			if err := sub.WriteReplay(snap.Frames); err != nil {
				return
			}
			flusher.Flush()
		}
	}

	if err := sub.StreamLive(r.Context(), flusher); err != nil {
		h.log.Debug().Err(err).Str("channel", name).Msg("http-flv subscriber disconnected")
	}
}
