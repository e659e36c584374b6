// ABOUTME: Request/response DTOs for the HTTP surface
// ABOUTME: Includes explicit field validation returning per-field messages

package api

import (
	"strings"

	"github.com/duxsoftware/equipos-api/internal/store"
)

// AuthRequest is the JSON request body for POST /auth/login.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the JSON response for a successful login.
type AuthResponse struct {
	Token string `json:"token"`
}

// TeamRequest is the JSON request body for POST /equipos and PUT /equipos/{id}.
type TeamRequest struct {
	Nombre string `json:"nombre"`
	Liga   string `json:"liga"`
	Pais   string `json:"pais"`
}

// Validate checks the request fields and returns a message per invalid
// field, keyed by field name, or nil when the request is valid. It runs
// before any service logic.
func (r *TeamRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Nombre) == "" {
		errs["nombre"] = "El nombre no puede estar vacío"
	}
	if strings.TrimSpace(r.Liga) == "" {
		errs["liga"] = "La liga no puede estar vacía"
	}
	if strings.TrimSpace(r.Pais) == "" {
		errs["pais"] = "El país no puede estar vacío"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// TeamResponse is the JSON representation of a team.
type TeamResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Liga   string `json:"liga"`
	Pais   string `json:"pais"`
}

func teamResponse(t *store.Team) TeamResponse {
	return TeamResponse{
		ID:     t.ID,
		Nombre: t.Name,
		Liga:   t.League,
		Pais:   t.Country,
	}
}

func teamResponses(ts []*store.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, teamResponse(t))
	}
	return out
}
