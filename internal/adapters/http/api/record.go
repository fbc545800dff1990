// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// RecordHandler handles student report requests.
type RecordHandler struct {
	deps Dependencies
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(deps Dependencies) *RecordHandler {
	return &RecordHandler{deps: deps}
}

// HandleGetRecord handles GET /records/{key} requests. Keys are matched
// case-insensitively by the store.
func (h *RecordHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/records/")
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	rec, classSize, err := h.deps.Report(r.Context(), key)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, StudentReport{
		Key:       rec.Key,
		Marks:     rec.Values,
		Total:     rec.Total,
		Score:     rec.Score,
		Tier:      string(rec.Tier),
		Rank:      rec.Rank,
		ClassSize: classSize,
	})
}
