package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"cep-distance-service/internal/api/dto"
	"cep-distance-service/internal/logging"
	"cep-distance-service/internal/services"

	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// QueryHandler exposes CRUD endpoints over stored query records.
type QueryHandler struct {
	Service *services.QueryService
}

// List returns stored records in creation order with simple pagination.
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}

	records, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		status, msg := statusForError(err)
		logging.Error("list queries failed", "error", err.Error())
		writeError(w, r, status, msg)
		return
	}

	res := dto.ListQueriesResponse{
		Total: len(records),
		Items: make([]dto.QueryResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Items = append(res.Items, dto.FromRecord(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one stored record.
func (h *QueryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.Service.Get(r.Context(), id)
	if err != nil {
		status, msg := statusForError(err)
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRecord(rec))
}

// UpdateNotes replaces the notes of a stored record; notes is the only
// mutable field, and unknown body fields are rejected.
func (h *QueryHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateNotesRequest

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

	rec, err := h.Service.UpdateNotes(r.Context(), id, req.Notes)
	if err != nil {
		status, msg := statusForError(err)
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRecord(rec))
}

// Delete removes a stored record.
func (h *QueryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		status, msg := statusForError(err)
		writeError(w, r, status, msg)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "invalid query id")
		return 0, false
	}
	return id, true
}
