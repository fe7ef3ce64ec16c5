package recommender

import (
	"context"
	"fmt"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

// Snapshot is the immutable catalog view an engine scores against. It is
// built once during Initialize and never mutated afterwards, so it can be
// shared across concurrent requests. A new engine instance is the way to
// observe fresh catalog data.
type Snapshot struct {
	// Movies in popularity-descending order, as fetched.
	Movies []domain.Movie
	Genres []domain.Genre
	// MovieGenres maps movie id to its genre ids.
	MovieGenres map[int64][]int64

	movieIndex map[int64]*domain.Movie
}

// LoadSnapshot reads the catalog, the genre universe and every
// movie-genre link from the store.
func LoadSnapshot(ctx context.Context, store Store, catalogSize int) (*Snapshot, error) {
	movies, err := store.FetchCatalog(ctx, catalogSize)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	genres, err := store.FetchGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch genres: %w", err)
	}

	snap := &Snapshot{
		Movies:      movies,
		Genres:      genres,
		MovieGenres: make(map[int64][]int64, len(movies)),
		movieIndex:  make(map[int64]*domain.Movie, len(movies)),
	}

	for i := range movies {
		m := &snap.Movies[i]
		snap.movieIndex[m.ID] = m

		if len(m.GenreIDs) > 0 {
			snap.MovieGenres[m.ID] = m.GenreIDs
			continue
		}
		genreIDs, err := store.FetchMovieGenres(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch genres for movie %d: %w", m.ID, err)
		}
		snap.MovieGenres[m.ID] = genreIDs
	}

	return snap, nil
}

// Movie returns the snapshot's record for id, or nil if the movie is not
// in the catalog.
func (s *Snapshot) Movie(id int64) *domain.Movie {
	return s.movieIndex[id]
}
