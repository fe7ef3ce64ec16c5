package handler

import (
	"net/http"

	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/aarav-crypto/movie-recommender/internal/service"
	"github.com/goccy/go-json"
)

// Handler carries the HTTP surface over the recommendation service.
type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := logging.With("handler")
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
