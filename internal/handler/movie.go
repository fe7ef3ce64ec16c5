package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GET /movies/{movieID}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieIDStr := chi.URLParam(r, "movieID")
	movieID, err := strconv.ParseInt(movieIDStr, 10, 64)
	if err != nil || movieID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie_id parameter")
		return
	}

	movie, err := h.service.GetMovie(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "movie_not_found",
				fmt.Sprintf("Movie with ID %d does not exist", movieID))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, movie)
}
