// If you are AI: This file is the registry's read-only HTTP surface
// (spec §4.7/§6): /servers_info and /channels_info, mirroring the
// writeJSON/CORS idiom this codebase uses for every other HTTP handler.

package registry

import (
	"encoding/json"
	"net/http"
)

// RegisterRoutes wires the registry's read-only endpoints onto mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/servers_info", s.handleServersInfo)
	mux.HandleFunc("/channels_info", s.handleChannelsInfo)
}

func (s *Server) handleServersInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.dir.Servers())
}

func (s *Server) handleChannelsInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.dir.Channels())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
