package handler

import (
	"net/http"
	"strconv"
)

// GET /recommendations/batch?page=N&limit=M
//
// Scores a page of the user population in one call so recommendations can
// be precomputed ahead of traffic. Per-user failures are reported in the
// result body rather than failing the whole batch.
func (h *Handler) GetBatchRecommendations(w http.ResponseWriter, r *http.Request) {
	page, ok := boundedQueryInt(w, r, "page", 1, 1, 10000)
	if !ok {
		return
	}
	limit, ok := boundedQueryInt(w, r, "limit", 20, 1, 100)
	if !ok {
		return
	}

	result, err := h.service.GetBatchRecommendations(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// boundedQueryInt reads an integer query parameter, falling back to def when
// absent and rejecting values outside [min, max] with a 400.
func boundedQueryInt(w http.ResponseWriter, r *http.Request, name string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < min || parsed > max {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+name+" parameter")
		return 0, false
	}
	return parsed, true
}
