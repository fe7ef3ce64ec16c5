package repository

import (
	"context"
	"fmt"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

func (r *Repository) FetchUserRatings(ctx context.Context, userID int64) ([]domain.Rating, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, movie_id, rating, created_at
		 FROM ratings
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ratings for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.UserID, &rt.MovieID, &rt.Value, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over ratings: %w", err)
	}
	return ratings, nil
}

// UpsertRating writes one logical rating per (user, movie); a later
// rating overwrites the earlier one.
func (r *Repository) UpsertRating(ctx context.Context, userID, movieID int64, value float64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ratings (user_id, movie_id, rating, created_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id, movie_id)
		 DO UPDATE SET rating = EXCLUDED.rating, created_at = EXCLUDED.created_at`,
		userID, movieID, value,
	)
	if err != nil {
		return fmt.Errorf("upsert rating user=%d movie=%d: %w", userID, movieID, err)
	}
	return nil
}
