// Package server exposes the voxel renderer over HTTP: a stateless
// render endpoint returning PNG frames plus scene discovery and health
// checks.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/velvetvoxel/voxelcast/pkg/scene"
)

// Server handles web requests for the voxel raytracer.
type Server struct {
	addr string
	log  zerolog.Logger
}

// NewServer creates a web server listening on addr.
func NewServer(addr string, log zerolog.Logger) *Server {
	return &Server{addr: addr, log: log}
}

// Handler returns the route table. Split from Start so tests can drive
// it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	return mux
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.addr).Msg("starting render server")
	return http.ListenAndServe(s.addr, s.Handler())
}

// handleHealth provides a simple health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the available scene names.
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]string{"scenes": scene.Names()})
}
