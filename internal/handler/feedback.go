package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/goccy/go-json"
)

// POST /users/{userID}/ratings
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	if req.MovieID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie_id")
		return
	}
	// Range is enforced here, at the submission boundary; the scoring
	// engine takes stored values as-is.
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Rating must be between 1 and 5")
		return
	}

	if err := h.service.SubmitRating(r.Context(), userID, req.MovieID, req.Rating); err != nil {
		writeLookupError(w, err, userID, req.MovieID)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// POST /users/{userID}/watch-history
func (h *Handler) SubmitWatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req WatchHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	if req.MovieID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie_id")
		return
	}
	if req.Duration < 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid watch_duration")
		return
	}

	entry := domain.WatchHistoryEntry{
		UserID:    userID,
		MovieID:   req.MovieID,
		Duration:  req.Duration,
		Completed: req.Completed,
	}
	if err := h.service.SubmitWatchHistory(r.Context(), entry); err != nil {
		writeLookupError(w, err, userID, req.MovieID)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func writeLookupError(w http.ResponseWriter, err error, userID, movieID int64) {
	if errors.Is(err, domain.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user_not_found",
			fmt.Sprintf("User with ID %d does not exist", userID))
		return
	}
	if errors.Is(err, domain.ErrMovieNotFound) {
		writeError(w, http.StatusNotFound, "movie_not_found",
			fmt.Sprintf("Movie with ID %d does not exist", movieID))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}
