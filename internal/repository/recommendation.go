package repository

import (
	"context"
	"fmt"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

// UpsertRecommendation persists one scored candidate, keyed by
// (user_id, movie_id, rec_type). Idempotent: re-scoring with unchanged
// inputs rewrites the same row, it never duplicates it.
func (r *Repository) UpsertRecommendation(ctx context.Context, rec domain.Recommendation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO recommendations (user_id, movie_id, score, rec_type, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id, movie_id, rec_type)
		 DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`,
		rec.UserID, rec.MovieID, rec.Score, string(rec.Type),
	)
	if err != nil {
		return fmt.Errorf("upsert recommendation user=%d movie=%d type=%s: %w",
			rec.UserID, rec.MovieID, rec.Type, err)
	}
	return nil
}
