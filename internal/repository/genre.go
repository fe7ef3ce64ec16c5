package repository

import (
	"context"
	"fmt"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

func (r *Repository) FetchGenres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over genres: %w", err)
	}
	return genres, nil
}

func (r *Repository) FetchMovieGenres(ctx context.Context, movieID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT genre_id FROM movie_genres WHERE movie_id = $1 ORDER BY genre_id`, movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("query genres for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var genreIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan genre id: %w", err)
		}
		genreIDs = append(genreIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over genre ids: %w", err)
	}
	return genreIDs, nil
}
