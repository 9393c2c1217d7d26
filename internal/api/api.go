// Package api exposes the REST surface over the live registry. The API is
// read-mostly and auth-free; match control is limited to start, early resume,
// and force-complete.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/jimmy058910/replitballgame-sub002/internal/config"
	"github.com/jimmy058910/replitballgame-sub002/internal/live"
)

// Server wires handlers onto a router.
type Server struct {
	reg *live.Registry
	cfg *config.Store
}

func NewServer(reg *live.Registry, cfg *config.Store) *Server {
	return &Server{reg: reg, cfg: cfg}
}

// Handler builds the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/matches", s.handleListMatches).Methods(http.MethodGet)
	api.HandleFunc("/matches", s.handleStartMatch).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}/commentary", s.handleCommentary).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}/complete", s.handleForceComplete).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/resume", s.handleResume).Methods(http.MethodPost)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
