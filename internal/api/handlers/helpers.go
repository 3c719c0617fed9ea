package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cep-distance-service/internal/domain"
	"cep-distance-service/internal/logging"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encode failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// statusForError maps the domain error taxonomy to a boundary status and a
// client-safe message.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, domain.ErrCEPNotFound):
		return http.StatusBadRequest, "postal code not found"
	case errors.Is(err, domain.ErrNoGeocodeMatch):
		return http.StatusBadRequest, "address could not be geocoded"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "external provider unavailable"
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, "query not found"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
