package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/aarav-crypto/movie-recommender/internal/metrics"
	"github.com/aarav-crypto/movie-recommender/internal/recommender"
	"github.com/rs/zerolog"
)

const (
	defaultLimit     = 10
	maxLimit         = 50
	batchConcurrency = 10
	batchRecLimit    = 10
)

// resultCache is the slice of the redis cache the service uses.
type resultCache interface {
	Get(ctx context.Context, engine string, userID int64, limit int) ([]domain.Movie, bool, error)
	Set(ctx context.Context, engine string, userID int64, limit int, movies []domain.Movie) error
	ClearUserCache(ctx context.Context, userID int64) error
}

// feedbackStore is the repository slice used by submissions, lookups and
// batch paging.
type feedbackStore interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	FetchMovieByID(ctx context.Context, movieID int64) (*domain.Movie, error)
	UpsertRating(ctx context.Context, userID, movieID int64, value float64) error
	AddWatchHistory(ctx context.Context, entry domain.WatchHistoryEntry) error
	FetchUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}

type Service struct {
	engines     map[recommender.Kind]recommender.Engine
	defaultKind recommender.Kind
	store       feedbackStore
	cache       resultCache
	log         zerolog.Logger
}

func New(engines map[recommender.Kind]recommender.Engine, defaultKind recommender.Kind, store feedbackStore, cache resultCache) *Service {
	return &Service{
		engines:     engines,
		defaultKind: defaultKind,
		store:       store,
		cache:       cache,
		log:         logging.With("service"),
	}
}

// engineFor resolves a requested kind to an engine. The zero kind means
// the configured default. The handler validates kind strings, so a miss
// here is a wiring error, not caller input.
func (s *Service) engineFor(kind recommender.Kind) (recommender.Engine, error) {
	if kind == "" {
		kind = s.defaultKind
	}
	eng, ok := s.engines[kind]
	if !ok {
		return nil, fmt.Errorf("engine %q not configured", kind)
	}
	return eng, nil
}

// GetRecommendations clamps the limit, consults the cache, and falls back
// to a full scoring pass on the requested engine. Cache failures are
// logged and treated as misses.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, limit int, kind recommender.Kind) (*domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	eng, err := s.engineFor(kind)
	if err != nil {
		return nil, err
	}
	engine := string(eng.Kind())
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	}()

	cached, found, err := s.cache.Get(ctx, engine, userID, limit)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache get failed")
	}
	if found {
		metrics.CacheHits.WithLabelValues("hit").Inc()
		metrics.RecommendationRequests.WithLabelValues(engine, "ok").Inc()
		return &domain.RecommendationResult{Movies: cached, Engine: engine, CacheHit: true}, nil
	}
	metrics.CacheHits.WithLabelValues("miss").Inc()

	movies, err := eng.GetRecommendationsForUser(ctx, userID, limit)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues(engine, "error").Inc()
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, engine, userID, limit, movies); cacheErr != nil {
		s.log.Warn().Err(cacheErr).Int64("user_id", userID).Msg("cache set failed")
	}

	metrics.RecommendationRequests.WithLabelValues(engine, "ok").Inc()
	return &domain.RecommendationResult{Movies: movies, Engine: engine, CacheHit: false}, nil
}

// SubmitRating upserts a rating and invalidates the user's cached lists.
// The caller validates the rating range; the engine treats whatever value
// is stored as valid input.
func (s *Service) SubmitRating(ctx context.Context, userID, movieID int64, value float64) error {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.store.FetchMovieByID(ctx, movieID); err != nil {
		return err
	}
	if err := s.store.UpsertRating(ctx, userID, movieID, value); err != nil {
		return fmt.Errorf("submit rating: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// SubmitWatchHistory appends a watch session and invalidates the user's
// cached lists.
func (s *Service) SubmitWatchHistory(ctx context.Context, entry domain.WatchHistoryEntry) error {
	if _, err := s.store.GetUserByID(ctx, entry.UserID); err != nil {
		return err
	}
	if _, err := s.store.FetchMovieByID(ctx, entry.MovieID); err != nil {
		return err
	}
	if err := s.store.AddWatchHistory(ctx, entry); err != nil {
		return fmt.Errorf("submit watch history: %w", err)
	}
	s.invalidate(ctx, entry.UserID)
	return nil
}

// GetBatchRecommendations scores one page of users with a bounded worker
// pool. Per-user failures are captured in the result rather than failing
// the batch.
func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.store.FetchUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}
	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	result, err := s.GetRecommendations(ctx, userID, batchRecLimit, s.defaultKind)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("batch scoring failed")
		return domain.BatchUserResult{
			UserID: userID,
			Status: domain.StatusFailed,
			Error:  "scoring_failed",
		}
	}
	return domain.BatchUserResult{
		UserID:          userID,
		Recommendations: result.Movies,
		Status:          domain.StatusSuccess,
	}
}

func (s *Service) GetMovie(ctx context.Context, movieID int64) (*domain.Movie, error) {
	return s.store.FetchMovieByID(ctx, movieID)
}

func (s *Service) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
	}
}
