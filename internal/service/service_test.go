package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/aarav-crypto/movie-recommender/internal/recommender"
)

type stubEngine struct {
	mu        sync.Mutex
	kind      recommender.Kind
	lastLimit int
	movies    []domain.Movie
}

func (s *stubEngine) Initialize(context.Context) error { return nil }

func (s *stubEngine) GetRecommendationsForUser(_ context.Context, _ int64, limit int) ([]domain.Movie, error) {
	s.mu.Lock()
	s.lastLimit = limit
	s.mu.Unlock()
	if len(s.movies) > limit {
		return s.movies[:limit], nil
	}
	return s.movies, nil
}

func (s *stubEngine) Kind() recommender.Kind { return s.kind }

type stubCache struct {
	mu      sync.Mutex
	data    map[string][]domain.Movie
	cleared []int64
}

func newStubCache() *stubCache { return &stubCache{data: map[string][]domain.Movie{}} }

func key(engine string, userID int64, limit int) string {
	return fmt.Sprintf("%s:%d:%d", engine, userID, limit)
}

func (c *stubCache) Get(_ context.Context, engine string, userID int64, limit int) ([]domain.Movie, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	movies, ok := c.data[key(engine, userID, limit)]
	return movies, ok, nil
}

func (c *stubCache) Set(_ context.Context, engine string, userID int64, limit int, movies []domain.Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key(engine, userID, limit)] = movies
	return nil
}

func (c *stubCache) ClearUserCache(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared = append(c.cleared, userID)
	c.data = map[string][]domain.Movie{}
	return nil
}

type stubStore struct {
	users   map[int64]bool
	movies  map[int64]bool
	ratings int
	watches int
}

func (s *stubStore) GetUserByID(_ context.Context, userID int64) (*domain.User, error) {
	if !s.users[userID] {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: userID}, nil
}

func (s *stubStore) FetchMovieByID(_ context.Context, movieID int64) (*domain.Movie, error) {
	if !s.movies[movieID] {
		return nil, domain.ErrMovieNotFound
	}
	return &domain.Movie{ID: movieID}, nil
}

func (s *stubStore) UpsertRating(context.Context, int64, int64, float64) error {
	s.ratings++
	return nil
}

func (s *stubStore) AddWatchHistory(context.Context, domain.WatchHistoryEntry) error {
	s.watches++
	return nil
}

func (s *stubStore) FetchUserIDsPaginated(_ context.Context, page, limit int) ([]int64, error) {
	ids := make([]int64, 0, limit)
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *stubStore) CountUsers(context.Context) (int, error) {
	return len(s.users), nil
}

// engineSet wraps a single stub engine as the set the service expects.
func engineSet(engines ...*stubEngine) map[recommender.Kind]recommender.Engine {
	set := make(map[recommender.Kind]recommender.Engine, len(engines))
	for _, e := range engines {
		set[e.kind] = e
	}
	return set
}

func TestLimitClamping(t *testing.T) {
	engine := &stubEngine{kind: recommender.KindHybrid}
	svc := New(engineSet(engine), recommender.KindHybrid, &stubStore{}, newStubCache())

	cases := []struct {
		in, want int
	}{
		{0, 10},
		{-3, 10},
		{7, 7},
		{200, 50},
	}
	for _, tc := range cases {
		if _, err := svc.GetRecommendations(context.Background(), 1, tc.in, ""); err != nil {
			t.Fatalf("limit %d: %v", tc.in, err)
		}
		if engine.lastLimit != tc.want {
			t.Errorf("limit %d: engine saw %d, want %d", tc.in, engine.lastLimit, tc.want)
		}
	}
}

func TestCacheHitSkipsEngine(t *testing.T) {
	engine := &stubEngine{kind: recommender.KindContent, movies: []domain.Movie{{ID: 1}, {ID: 2}}}
	cache := newStubCache()
	svc := New(engineSet(engine), recommender.KindContent, &stubStore{}, cache)

	first, err := svc.GetRecommendations(context.Background(), 7, 10, "")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.CacheHit {
		t.Error("first call should miss")
	}

	engine.lastLimit = -1
	second, err := svc.GetRecommendations(context.Background(), 7, 10, "")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !second.CacheHit {
		t.Error("second call should hit the cache")
	}
	if engine.lastLimit != -1 {
		t.Error("engine was consulted despite a cache hit")
	}
	if len(second.Movies) != len(first.Movies) {
		t.Errorf("cached result differs: %d vs %d", len(second.Movies), len(first.Movies))
	}
}

func TestSubmitRatingInvalidatesCache(t *testing.T) {
	store := &stubStore{users: map[int64]bool{1: true}, movies: map[int64]bool{10: true}}
	cache := newStubCache()
	svc := New(engineSet(&stubEngine{kind: recommender.KindHybrid}), recommender.KindHybrid, store, cache)

	if err := svc.SubmitRating(context.Background(), 1, 10, 4.0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if store.ratings != 1 {
		t.Errorf("ratings written = %d, want 1", store.ratings)
	}
	if len(cache.cleared) != 1 || cache.cleared[0] != 1 {
		t.Errorf("cache cleared for %v, want [1]", cache.cleared)
	}
}

func TestBatchRecommendations(t *testing.T) {
	store := &stubStore{users: map[int64]bool{1: true, 2: true, 3: true}}
	engine := &stubEngine{kind: recommender.KindHybrid, movies: []domain.Movie{{ID: 10}}}
	svc := New(engineSet(engine), recommender.KindHybrid, store, newStubCache())

	resp, err := svc.GetBatchRecommendations(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if resp.TotalUsers != 3 {
		t.Errorf("total users = %d, want 3", resp.TotalUsers)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(resp.Results))
	}
	if resp.Summary.SuccessCount != 3 || resp.Summary.FailedCount != 0 {
		t.Errorf("summary = %+v, want 3 successes", resp.Summary)
	}
	for _, r := range resp.Results {
		if r.Status != domain.StatusSuccess {
			t.Errorf("user %d status = %s", r.UserID, r.Status)
		}
	}
}

func TestEngineSelection(t *testing.T) {
	content := &stubEngine{kind: recommender.KindContent, movies: []domain.Movie{{ID: 1}}}
	hybrid := &stubEngine{kind: recommender.KindHybrid, movies: []domain.Movie{{ID: 2}}}
	svc := New(engineSet(content, hybrid), recommender.KindHybrid, &stubStore{}, newStubCache())

	result, err := svc.GetRecommendations(context.Background(), 1, 10, recommender.KindContent)
	if err != nil {
		t.Fatalf("content request: %v", err)
	}
	if result.Engine != string(recommender.KindContent) {
		t.Errorf("engine = %q, want %q", result.Engine, recommender.KindContent)
	}
	if content.lastLimit == 0 {
		t.Error("content engine was not consulted")
	}
	if hybrid.lastLimit != 0 {
		t.Error("hybrid engine consulted for a content request")
	}

	// The zero kind falls back to the configured default.
	result, err = svc.GetRecommendations(context.Background(), 2, 10, "")
	if err != nil {
		t.Fatalf("default request: %v", err)
	}
	if result.Engine != string(recommender.KindHybrid) {
		t.Errorf("engine = %q, want %q", result.Engine, recommender.KindHybrid)
	}
	if hybrid.lastLimit == 0 {
		t.Error("default request bypassed the hybrid engine")
	}

	if _, err := svc.GetRecommendations(context.Background(), 1, 10, recommender.KindCollaborative); err == nil {
		t.Error("expected error for a kind missing from the set")
	}
}

func TestSubmitRatingUnknownUser(t *testing.T) {
	store := &stubStore{users: map[int64]bool{}, movies: map[int64]bool{10: true}}
	svc := New(engineSet(&stubEngine{kind: recommender.KindHybrid}), recommender.KindHybrid, store, newStubCache())

	err := svc.SubmitRating(context.Background(), 99, 10, 4.0)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
	if store.ratings != 0 {
		t.Error("rating written for unknown user")
	}
}

func TestSubmitWatchHistoryUnknownMovie(t *testing.T) {
	store := &stubStore{users: map[int64]bool{1: true}, movies: map[int64]bool{}}
	svc := New(engineSet(&stubEngine{kind: recommender.KindHybrid}), recommender.KindHybrid, store, newStubCache())

	err := svc.SubmitWatchHistory(context.Background(), domain.WatchHistoryEntry{UserID: 1, MovieID: 404})
	if !errors.Is(err, domain.ErrMovieNotFound) {
		t.Errorf("err = %v, want ErrMovieNotFound", err)
	}
	if store.watches != 0 {
		t.Error("watch entry written for unknown movie")
	}
}
