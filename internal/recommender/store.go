package recommender

import (
	"context"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

// Store is the read side of the persistence collaborator. FetchCatalog
// must return movies ordered by popularity descending; the snapshot and
// every tiebreak downstream rely on that order.
type Store interface {
	FetchCatalog(ctx context.Context, limit int) ([]domain.Movie, error)
	FetchGenres(ctx context.Context) ([]domain.Genre, error)
	FetchMovieGenres(ctx context.Context, movieID int64) ([]int64, error)
	FetchUserRatings(ctx context.Context, userID int64) ([]domain.Rating, error)
	FetchUserWatchHistory(ctx context.Context, userID int64, limit int) ([]domain.WatchHistoryEntry, error)
	FetchMovieByID(ctx context.Context, movieID int64) (*domain.Movie, error)
	FetchUserIDs(ctx context.Context, limit int) ([]int64, error)
}

// Sink receives every scored candidate as an upsert keyed by
// (user, movie, type). Writes are a best-effort audit channel: a failed
// upsert is logged by the caller and never aborts scoring.
type Sink interface {
	UpsertRecommendation(ctx context.Context, rec domain.Recommendation) error
}
