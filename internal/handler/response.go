package handler

import "github.com/aarav-crypto/movie-recommender/internal/domain"

type RecommendationResponse struct {
	UserID          int64                     `json:"user_id"`
	Recommendations []domain.Movie            `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type RatingRequest struct {
	MovieID int64   `json:"movie_id"`
	Rating  float64 `json:"rating"`
}

type WatchHistoryRequest struct {
	MovieID   int64 `json:"movie_id"`
	Duration  int   `json:"watch_duration"`
	Completed bool  `json:"completed"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
