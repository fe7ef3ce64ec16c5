package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/aarav-crypto/movie-recommender/internal/recommender"
	"github.com/go-chi/chi/v5"
)

// GET /users/{userID}/recommendations?limit=N&engine=kind
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	// Parse and validate limit
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	// An empty engine parameter means the configured default.
	var kind recommender.Kind
	if engineStr := r.URL.Query().Get("engine"); engineStr != "" {
		parsed, err := recommender.ParseKind(engineStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid engine parameter")
			return
		}
		kind = parsed
	}

	result, err := h.service.GetRecommendations(r.Context(), userID, limit, kind)
	if err != nil {
		if errors.Is(err, domain.ErrEngineNotReady) {
			writeError(w, http.StatusServiceUnavailable, "engine_not_ready",
				"Recommendation engine is still initializing")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	// Movies is never nil in the response, even for unknown users, who
	// simply get an empty list.
	if result.Movies == nil {
		result.Movies = []domain.Movie{}
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		UserID:          userID,
		Recommendations: result.Movies,
		Metadata: domain.RecommendationMeta{
			Engine:      result.Engine,
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Movies),
		},
	})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return 0, false
	}
	return userID, true
}
