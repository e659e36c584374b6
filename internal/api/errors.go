// ABOUTME: Error boundary translating domain errors into HTTP statuses
// ABOUTME: Writes the {"error": category, "mensaje": detail} body shape

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/duxsoftware/equipos-api/internal/store"
)

// errorBody is the JSON shape shared by 400/401/404/500 responses.
type errorBody struct {
	Error   string `json:"error"`
	Mensaje string `json:"mensaje"`
}

// Error categories surfaced to clients.
const (
	categoryNotFound     = "Recurso no encontrado"
	categoryUnauthorized = "No autorizado"
	categoryBadRequest   = "Solicitud inválida"
	categoryIntegrity    = "Violación de integridad en la base de datos"
	categoryInternal     = "Error interno del servidor"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encoding response", "error", err)
	}
}

// writeError writes the structured error body.
func writeError(w http.ResponseWriter, status int, category, mensaje string) {
	writeJSON(w, status, errorBody{Error: category, Mensaje: mensaje})
}

// writeDomainError maps a service/store error to its HTTP response.
// notFoundMsg is used when the error is store.ErrNotFound; anything
// unexpected becomes a 500 with a generic message.
func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, categoryNotFound, notFoundMsg)
	case errors.Is(err, store.ErrUsernameExists):
		writeError(w, http.StatusBadRequest, categoryIntegrity, err.Error())
	default:
		slog.Default().Error("unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, categoryInternal, "Se produjo un error inesperado")
	}
}
