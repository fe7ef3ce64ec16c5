// Package recommender implements the recommendation core: a content-based
// scorer driven by genre preference profiles, a collaborative scorer
// driven by a Pearson user-similarity graph, and a hybrid blender that
// fuses the two by list position.
//
// Engines score against an immutable snapshot built during Initialize.
// The snapshot is a coarse cache with no invalidation; construct a new
// engine to observe fresh catalog or similarity data.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/aarav-crypto/movie-recommender/internal/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Kind names a scoring strategy.
type Kind string

const (
	KindContent       Kind = "content"
	KindCollaborative Kind = "collaborative"
	KindHybrid        Kind = "hybrid"
)

// ParseKind maps a configuration string to a Kind, defaulting to hybrid
// for the empty string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindContent, KindCollaborative, KindHybrid:
		return Kind(s), nil
	case "":
		return KindHybrid, nil
	}
	return "", fmt.Errorf("unknown engine kind %q", s)
}

// Engine is the single capability all three strategies implement.
// Initialize must complete before the first query.
type Engine interface {
	Initialize(ctx context.Context) error
	GetRecommendationsForUser(ctx context.Context, userID int64, limit int) ([]domain.Movie, error)
	Kind() Kind
}

// Options bound the data an engine loads at initialization.
type Options struct {
	// CatalogSize caps the movie snapshot. Default 1000.
	CatalogSize int
	// UniverseSize caps the user universe behind the similarity graph.
	// Default 50.
	UniverseSize int
	// WatchHistoryLimit caps the history entries read per user. Default 100.
	WatchHistoryLimit int
}

func (o Options) withDefaults() Options {
	if o.CatalogSize <= 0 {
		o.CatalogSize = 1000
	}
	if o.UniverseSize <= 0 {
		o.UniverseSize = 50
	}
	if o.WatchHistoryLimit <= 0 {
		o.WatchHistoryLimit = 100
	}
	return o
}

// New constructs an uninitialized engine of the given kind. The hybrid
// engine composes the other two rather than inheriting from either.
func New(kind Kind, store Store, sink Sink, opts Options) Engine {
	opts = opts.withDefaults()
	switch kind {
	case KindContent:
		return newContentEngine(store, sink, opts)
	case KindCollaborative:
		return newCollaborativeEngine(store, sink, opts)
	default:
		return &hybridEngine{
			content:       newContentEngine(store, sink, opts),
			collaborative: newCollaborativeEngine(store, sink, opts),
			blender:       NewHybridBlender(sink),
			store:         store,
			log:           logging.With("hybrid_engine"),
		}
	}
}

// NewSet constructs one engine per kind. The content and collaborative
// instances are shared with the hybrid engine, so initializing the
// hybrid warms every kind a request can select.
func NewSet(store Store, sink Sink, opts Options) map[Kind]Engine {
	opts = opts.withDefaults()
	content := newContentEngine(store, sink, opts)
	collaborative := newCollaborativeEngine(store, sink, opts)
	return map[Kind]Engine{
		KindContent:       content,
		KindCollaborative: collaborative,
		KindHybrid: &hybridEngine{
			content:       content,
			collaborative: collaborative,
			blender:       NewHybridBlender(sink),
			store:         store,
			log:           logging.With("hybrid_engine"),
		},
	}
}

// ---------------- content ----------------

type contentEngine struct {
	store  Store
	sink   Sink
	opts   Options
	snap   *Snapshot
	scorer *ContentScorer
	log    zerolog.Logger
}

func newContentEngine(store Store, sink Sink, opts Options) *contentEngine {
	return &contentEngine{
		store: store,
		sink:  sink,
		opts:  opts,
		log:   logging.With("content_engine"),
	}
}

func (e *contentEngine) Kind() Kind { return KindContent }

func (e *contentEngine) Initialize(ctx context.Context) error {
	start := time.Now()
	snap, err := LoadSnapshot(ctx, e.store, e.opts.CatalogSize)
	if err != nil {
		return fmt.Errorf("content engine: %w", err)
	}
	e.snap = snap
	e.scorer = NewContentScorer(snap, e.sink)

	metrics.EngineInitDuration.WithLabelValues(string(KindContent)).Observe(time.Since(start).Seconds())
	e.log.Info().
		Int("movies", len(snap.Movies)).
		Int("genres", len(snap.Genres)).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot loaded")
	return nil
}

func (e *contentEngine) rank(ctx context.Context, userID int64, limit int) ([]ScoredMovie, error) {
	if e.snap == nil {
		return nil, domain.ErrEngineNotReady
	}

	ratings, err := e.store.FetchUserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch ratings for user %d: %w", userID, err)
	}
	history, err := e.store.FetchUserWatchHistory(ctx, userID, e.opts.WatchHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch watch history for user %d: %w", userID, err)
	}

	// Rated or watched movies are never candidates.
	exclude := make(map[int64]bool, len(ratings)+len(history))
	for _, r := range ratings {
		exclude[r.MovieID] = true
	}
	for _, h := range history {
		exclude[h.MovieID] = true
	}

	prefs := BuildPreferenceProfile(e.snap, ratings, history)
	return truncate(e.scorer.Rank(ctx, userID, prefs, exclude), limit), nil
}

func (e *contentEngine) GetRecommendationsForUser(ctx context.Context, userID int64, limit int) ([]domain.Movie, error) {
	scored, err := e.rank(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return hydrate(ctx, e.store, scored)
}

// ---------------- collaborative ----------------

type collaborativeEngine struct {
	store  Store
	sink   Sink
	opts   Options
	snap   *Snapshot
	scorer *CollaborativeScorer
	log    zerolog.Logger
}

func newCollaborativeEngine(store Store, sink Sink, opts Options) *collaborativeEngine {
	return &collaborativeEngine{
		store: store,
		sink:  sink,
		opts:  opts,
		log:   logging.With("collaborative_engine"),
	}
}

func (e *collaborativeEngine) Kind() Kind { return KindCollaborative }

func (e *collaborativeEngine) Initialize(ctx context.Context) error {
	start := time.Now()
	snap, err := LoadSnapshot(ctx, e.store, e.opts.CatalogSize)
	if err != nil {
		return fmt.Errorf("collaborative engine: %w", err)
	}

	userIDs, err := e.store.FetchUserIDs(ctx, e.opts.UniverseSize)
	if err != nil {
		return fmt.Errorf("fetch user universe: %w", err)
	}

	vectors := make(map[int64]RatingVector, len(userIDs))
	for _, userID := range userIDs {
		ratings, err := e.store.FetchUserRatings(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetch ratings for user %d: %w", userID, err)
		}
		if len(ratings) == 0 {
			continue
		}
		vector := make(RatingVector, len(ratings))
		for _, r := range ratings {
			vector[r.MovieID] = r.Value
		}
		vectors[userID] = vector
	}

	simStart := time.Now()
	sims, err := BuildSimilarityMatrix(ctx, vectors)
	if err != nil {
		return fmt.Errorf("build similarity matrix: %w", err)
	}
	metrics.SimilarityBuildDuration.Observe(time.Since(simStart).Seconds())

	e.snap = snap
	e.scorer = NewCollaborativeScorer(snap, e.sink, vectors, sims)

	metrics.EngineInitDuration.WithLabelValues(string(KindCollaborative)).Observe(time.Since(start).Seconds())
	e.log.Info().
		Int("movies", len(snap.Movies)).
		Int("universe", len(vectors)).
		Dur("elapsed", time.Since(start)).
		Msg("similarity graph built")
	return nil
}

func (e *collaborativeEngine) rank(ctx context.Context, userID int64, limit int) ([]ScoredMovie, error) {
	if e.snap == nil {
		return nil, domain.ErrEngineNotReady
	}

	ratings, err := e.store.FetchUserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch ratings for user %d: %w", userID, err)
	}
	rated := make(map[int64]bool, len(ratings))
	for _, r := range ratings {
		rated[r.MovieID] = true
	}

	return truncate(e.scorer.Rank(ctx, userID, rated), limit), nil
}

func (e *collaborativeEngine) GetRecommendationsForUser(ctx context.Context, userID int64, limit int) ([]domain.Movie, error) {
	scored, err := e.rank(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return hydrate(ctx, e.store, scored)
}

// ---------------- hybrid ----------------

type hybridEngine struct {
	content       *contentEngine
	collaborative *collaborativeEngine
	blender       *HybridBlender
	store         Store
	log           zerolog.Logger
}

func (e *hybridEngine) Kind() Kind { return KindHybrid }

func (e *hybridEngine) Initialize(ctx context.Context) error {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.content.Initialize(ctx) })
	g.Go(func() error { return e.collaborative.Initialize(ctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	metrics.EngineInitDuration.WithLabelValues(string(KindHybrid)).Observe(time.Since(start).Seconds())
	return nil
}

func (e *hybridEngine) GetRecommendationsForUser(ctx context.Context, userID int64, limit int) ([]domain.Movie, error) {
	// The two scoring passes only touch immutable engine state and the
	// read side of the store, so they run concurrently until the merge.
	var contentScored, collaborativeScored []ScoredMovie
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contentScored, err = e.content.rank(gctx, userID, limit)
		return err
	})
	g.Go(func() error {
		var err error
		collaborativeScored, err = e.collaborative.rank(gctx, userID, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fused := e.blender.Blend(ctx, userID, contentScored, collaborativeScored)
	return hydrate(ctx, e.store, truncate(fused, limit))
}

// ---------------- shared ----------------

func truncate(scored []ScoredMovie, limit int) []ScoredMovie {
	if limit > 0 && len(scored) > limit {
		return scored[:limit]
	}
	return scored
}

// hydrate resolves ranked ids to full movie records, preserving order.
// Movies that vanished from the store since the snapshot are skipped.
func hydrate(ctx context.Context, store Store, scored []ScoredMovie) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0, len(scored))
	for _, sm := range scored {
		movie, err := store.FetchMovieByID(ctx, sm.MovieID)
		if err != nil {
			if errors.Is(err, domain.ErrMovieNotFound) {
				continue
			}
			return nil, fmt.Errorf("hydrate movie %d: %w", sm.MovieID, err)
		}
		movies = append(movies, *movie)
	}
	return movies, nil
}
