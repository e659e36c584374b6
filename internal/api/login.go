// ABOUTME: Login handler exchanging username/password for a JWT
// ABOUTME: All authentication failures collapse to one generic 401 body

package api

import (
	"encoding/json"
	"net/http"
)

// handleLogin handles POST /auth/login requests.
// Every failed login, whatever the internal reason, answers with the same
// generic 401 so callers cannot probe which usernames exist or why an
// account is blocked.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, categoryBadRequest, "Cuerpo de la petición inválido")
		return
	}

	token, err := s.gate.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.logger.Debug("login rejected", "username", req.Username)
		writeError(w, http.StatusUnauthorized, categoryUnauthorized, "Credenciales inválidas")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token})
}
