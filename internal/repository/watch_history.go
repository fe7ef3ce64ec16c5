package repository

import (
	"context"
	"fmt"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

func (r *Repository) FetchUserWatchHistory(ctx context.Context, userID int64, limit int) ([]domain.WatchHistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, movie_id, watch_duration, completed, watched_at
		 FROM watch_history
		 WHERE user_id = $1
		 ORDER BY watched_at DESC
		 LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query watch history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []domain.WatchHistoryEntry
	for rows.Next() {
		var e domain.WatchHistoryEntry
		if err := rows.Scan(&e.UserID, &e.MovieID, &e.Duration, &e.Completed, &e.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan watch history entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over watch history: %w", err)
	}
	return entries, nil
}

// AddWatchHistory appends one watch session. Entries are never updated;
// each session is its own preference signal.
func (r *Repository) AddWatchHistory(ctx context.Context, entry domain.WatchHistoryEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO watch_history (user_id, movie_id, watch_duration, completed, watched_at)
		 VALUES ($1, $2, $3, $4, now())`,
		entry.UserID, entry.MovieID, entry.Duration, entry.Completed,
	)
	if err != nil {
		return fmt.Errorf("insert watch history user=%d movie=%d: %w", entry.UserID, entry.MovieID, err)
	}
	return nil
}
