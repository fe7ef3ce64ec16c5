package recommender

import (
	"context"
	"fmt"
	"sync"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

// fakeStore is an in-memory Store. Movies must be listed in
// popularity-descending order, as the repository contract requires.
type fakeStore struct {
	movies      []domain.Movie
	genres      []domain.Genre
	movieGenres map[int64][]int64
	ratings     map[int64][]domain.Rating
	history     map[int64][]domain.WatchHistoryEntry
	userIDs     []int64
}

func (f *fakeStore) FetchCatalog(_ context.Context, limit int) ([]domain.Movie, error) {
	if limit > 0 && len(f.movies) > limit {
		return f.movies[:limit], nil
	}
	return f.movies, nil
}

func (f *fakeStore) FetchGenres(context.Context) ([]domain.Genre, error) {
	return f.genres, nil
}

func (f *fakeStore) FetchMovieGenres(_ context.Context, movieID int64) ([]int64, error) {
	return f.movieGenres[movieID], nil
}

func (f *fakeStore) FetchUserRatings(_ context.Context, userID int64) ([]domain.Rating, error) {
	return f.ratings[userID], nil
}

func (f *fakeStore) FetchUserWatchHistory(_ context.Context, userID int64, limit int) ([]domain.WatchHistoryEntry, error) {
	entries := f.history[userID]
	if limit > 0 && len(entries) > limit {
		return entries[:limit], nil
	}
	return entries, nil
}

func (f *fakeStore) FetchMovieByID(_ context.Context, movieID int64) (*domain.Movie, error) {
	for i := range f.movies {
		if f.movies[i].ID == movieID {
			m := f.movies[i]
			return &m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (f *fakeStore) FetchUserIDs(_ context.Context, limit int) ([]int64, error) {
	if limit > 0 && len(f.userIDs) > limit {
		return f.userIDs[:limit], nil
	}
	return f.userIDs, nil
}

// recordingSink records upserts keyed the way the database would.
type recordingSink struct {
	mu      sync.Mutex
	rows    map[string]float64
	upserts int
	failAll bool
}

func newRecordingSink() *recordingSink {
	return &recordingSink{rows: map[string]float64{}}
}

func (s *recordingSink) UpsertRecommendation(_ context.Context, rec domain.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.failAll {
		return fmt.Errorf("sink unavailable")
	}
	s.rows[fmt.Sprintf("%d:%d:%s", rec.UserID, rec.MovieID, rec.Type)] = rec.Score
	return nil
}

func (s *recordingSink) score(userID, movieID int64, recType domain.RecommendationType) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rows[fmt.Sprintf("%d:%d:%s", userID, movieID, recType)]
	return v, ok
}

func (s *recordingSink) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// scenarioStore builds the five-movie catalog used across the tests:
// genres Action(1), Drama(2), Sci-Fi(3), Thriller(4), Crime(5).
func scenarioStore() *fakeStore {
	movieGenres := map[int64][]int64{
		1: {1, 3},    // The Matrix: Action, Sci-Fi
		2: {1, 3, 4}, // Inception: Action, Sci-Fi, Thriller
		3: {2},       // Shawshank: Drama
		4: {1, 2, 4}, // Dark Knight: Action, Drama, Thriller
		5: {2, 5},    // Pulp Fiction: Drama, Crime
	}
	return &fakeStore{
		movies: []domain.Movie{
			{ID: 1, Title: "The Matrix", Popularity: 100.0, VoteAverage: 8.7, GenreIDs: movieGenres[1]},
			{ID: 2, Title: "Inception", Popularity: 95.0, VoteAverage: 8.4, GenreIDs: movieGenres[2]},
			{ID: 3, Title: "The Shawshank Redemption", Popularity: 90.0, VoteAverage: 8.7, GenreIDs: movieGenres[3]},
			{ID: 4, Title: "The Dark Knight", Popularity: 88.0, VoteAverage: 8.5, GenreIDs: movieGenres[4]},
			{ID: 5, Title: "Pulp Fiction", Popularity: 85.0, VoteAverage: 8.5, GenreIDs: movieGenres[5]},
		},
		genres: []domain.Genre{
			{ID: 1, Name: "Action"},
			{ID: 2, Name: "Drama"},
			{ID: 3, Name: "Sci-Fi"},
			{ID: 4, Name: "Thriller"},
			{ID: 5, Name: "Crime"},
		},
		movieGenres: movieGenres,
		ratings:     map[int64][]domain.Rating{},
		history:     map[int64][]domain.WatchHistoryEntry{},
	}
}

func mustSnapshot(store *fakeStore) *Snapshot {
	snap, err := LoadSnapshot(context.Background(), store, 1000)
	if err != nil {
		panic(err)
	}
	return snap
}
