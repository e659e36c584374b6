// ABOUTME: HTTP handlers for the /equipos CRUD surface
// ABOUTME: Validates request bodies before delegating to the team service

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// teamID parses the {id} path value. An unparseable id is reported the same
// way as a missing team.
func teamID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func notFoundMsg(id any) string {
	return fmt.Sprintf("Equipo no encontrado con ID: %v", id)
}

// handleListTeams handles GET /equipos requests.
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, teamResponses(teams))
}

// handleSearchTeams handles GET /equipos/buscar?nombre=X requests.
// The match is a case-insensitive substring; an empty query matches all.
func (s *Server) handleSearchTeams(w http.ResponseWriter, r *http.Request) {
	nombre := r.URL.Query().Get("nombre")

	teams, err := s.teams.SearchByName(r.Context(), nombre)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, teamResponses(teams))
}

// handleGetTeam handles GET /equipos/{id} requests.
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, categoryNotFound, notFoundMsg(r.PathValue("id")))
		return
	}

	team, err := s.teams.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, notFoundMsg(id))
		return
	}
	writeJSON(w, http.StatusOK, teamResponse(team))
}

// handleCreateTeam handles POST /equipos requests.
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, categoryBadRequest, "Cuerpo de la petición inválido")
		return
	}

	if fieldErrs := req.Validate(); fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrs)
		return
	}

	team, err := s.teams.Create(r.Context(), req.Nombre, req.Liga, req.Pais)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, teamResponse(team))
}

// handleUpdateTeam handles PUT /equipos/{id} requests.
// All three fields are overwritten; partial updates are not supported.
func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, categoryNotFound, notFoundMsg(r.PathValue("id")))
		return
	}

	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, categoryBadRequest, "Cuerpo de la petición inválido")
		return
	}

	if fieldErrs := req.Validate(); fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrs)
		return
	}

	team, err := s.teams.Update(r.Context(), id, req.Nombre, req.Liga, req.Pais)
	if err != nil {
		writeDomainError(w, err, notFoundMsg(id))
		return
	}
	writeJSON(w, http.StatusOK, teamResponse(team))
}

// handleDeleteTeam handles DELETE /equipos/{id} requests.
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, categoryNotFound, notFoundMsg(r.PathValue("id")))
		return
	}

	if err := s.teams.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, notFoundMsg(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
