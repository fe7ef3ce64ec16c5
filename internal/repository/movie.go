package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/jackc/pgx/v5"
)

// FetchCatalog returns up to limit movies ordered by popularity
// descending, each with its genre ids aggregated in.
func (r *Repository) FetchCatalog(ctx context.Context, limit int) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.title, m.overview, m.popularity, m.vote_average,
		        m.runtime, m.release_date, m.created_at,
		        COALESCE(array_agg(mg.genre_id) FILTER (WHERE mg.genre_id IS NOT NULL), '{}')
		 FROM movies m
		 LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		 GROUP BY m.id
		 ORDER BY m.popularity DESC, m.id
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var m domain.Movie
		err := rows.Scan(&m.ID, &m.Title, &m.Overview, &m.Popularity, &m.VoteAverage,
			&m.Runtime, &m.ReleaseDate, &m.CreatedAt, &m.GenreIDs)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over movies: %w", err)
	}
	return movies, nil
}

// FetchMovieByID returns one movie with its genre ids, or
// domain.ErrMovieNotFound.
func (r *Repository) FetchMovieByID(ctx context.Context, movieID int64) (*domain.Movie, error) {
	m := &domain.Movie{}

	err := r.pool.QueryRow(ctx,
		`SELECT m.id, m.title, m.overview, m.popularity, m.vote_average,
		        m.runtime, m.release_date, m.created_at,
		        COALESCE(array_agg(mg.genre_id) FILTER (WHERE mg.genre_id IS NOT NULL), '{}')
		 FROM movies m
		 LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		 WHERE m.id = $1
		 GROUP BY m.id`, movieID,
	).Scan(&m.ID, &m.Title, &m.Overview, &m.Popularity, &m.VoteAverage,
		&m.Runtime, &m.ReleaseDate, &m.CreatedAt, &m.GenreIDs)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("query movie id=%d: %w", movieID, err)
	}
	return m, nil
}
