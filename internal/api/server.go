// ABOUTME: HTTP server wiring routes, authentication rules, and middleware
// ABOUTME: Composition root for the API surface; collaborators arrive via constructor

package api

import (
	"log/slog"
	"net/http"

	"github.com/duxsoftware/equipos-api/internal/auth"
	"github.com/duxsoftware/equipos-api/internal/teams"
)

// routeRules is the ordered allow-list evaluated before dispatch.
// Everything not explicitly public requires a bearer token.
var routeRules = []auth.Rule{
	{Method: http.MethodPost, Pattern: "/auth/login", Public: true},
	{Method: http.MethodGet, Pattern: "/healthz", Public: true},
}

// Server is the HTTP API over the authentication gate and team service.
type Server struct {
	gate    *auth.Gate
	teams   *teams.Service
	logger  *slog.Logger
	handler http.Handler
}

// NewServer builds the API server. The loader and codec are the same
// instances the gate uses, so login and request authentication agree on
// principals and signatures.
func NewServer(gate *auth.Gate, teamSvc *teams.Service, loader auth.PrincipalLoader, codec *auth.TokenCodec) *Server {
	s := &Server{
		gate:   gate,
		teams:  teamSvc,
		logger: slog.Default().With("component", "api"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("GET /equipos", s.handleListTeams)
	mux.HandleFunc("GET /equipos/buscar", s.handleSearchTeams)
	mux.HandleFunc("GET /equipos/{id}", s.handleGetTeam)
	mux.HandleFunc("POST /equipos", s.handleCreateTeam)
	mux.HandleFunc("PUT /equipos/{id}", s.handleUpdateTeam)
	mux.HandleFunc("DELETE /equipos/{id}", s.handleDeleteTeam)

	authenticated := auth.Middleware(routeRules, loader, codec)(mux)
	s.handler = requestLogger(s.logger)(authenticated)

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
