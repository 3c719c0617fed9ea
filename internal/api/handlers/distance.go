package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"cep-distance-service/internal/api/dto"
	"cep-distance-service/internal/logging"
	"cep-distance-service/internal/services"
)

type DistanceHandler struct {
	Service *services.QueryService
}

// Compute runs the full distance-query pipeline for a pair of postal codes
// and returns the newly persisted record.
func (h *DistanceHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req dto.DistanceRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	rec, err := h.Service.ComputeAndStore(r.Context(), req.Origin, req.Destination, req.Notes)
	if err != nil {
		status, msg := statusForError(err)
		logging.Error("compute and store failed",
			"origin", req.Origin,
			"destination", req.Destination,
			"status", status,
			"error", err.Error(),
		)
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromRecord(rec))
}
