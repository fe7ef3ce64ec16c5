package recommender

import (
	"context"
	"sort"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/rs/zerolog"
)

// ScoredMovie is one ranked candidate.
type ScoredMovie struct {
	MovieID int64
	Score   float64
}

// ContentScorer ranks unseen movies by how well their genres match a
// user's preference profile, adjusted by vote average and popularity.
type ContentScorer struct {
	snap *Snapshot
	sink Sink
	log  zerolog.Logger
}

func NewContentScorer(snap *Snapshot, sink Sink) *ContentScorer {
	return &ContentScorer{
		snap: snap,
		sink: sink,
		log:  logging.With("content_scorer"),
	}
}

// Rank scores every catalog movie not in exclude and returns the full
// candidate list in descending score order. Every scored candidate is
// also upserted as a content_based recommendation; those writes are
// best-effort and never fail the ranking.
func (s *ContentScorer) Rank(ctx context.Context, userID int64, prefs GenrePreferenceVector, exclude map[int64]bool) []ScoredMovie {
	scored := rankByContent(s.snap, prefs, exclude)
	persistScores(ctx, s.sink, s.log, userID, scored, domain.RecTypeContentBased)
	return scored
}

// rankByContent is the pure scoring pass. The catalog is walked in its
// popularity order and the sort is stable, so equal scores keep that
// order (a reproducible tiebreak).
func rankByContent(snap *Snapshot, prefs GenrePreferenceVector, exclude map[int64]bool) []ScoredMovie {
	scored := make([]ScoredMovie, 0, len(snap.Movies))
	for i := range snap.Movies {
		m := &snap.Movies[i]
		if exclude[m.ID] {
			continue
		}
		scored = append(scored, ScoredMovie{
			MovieID: m.ID,
			Score:   contentScore(m, snap.MovieGenres[m.ID], prefs),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// contentScore averages the preference weight over the movie's genres,
// then applies the vote-average and popularity factors. A movie with no
// genres scores 0.
func contentScore(m *domain.Movie, genreIDs []int64, prefs GenrePreferenceVector) float64 {
	if len(genreIDs) == 0 {
		return 0
	}

	sum := 0.0
	for _, genreID := range genreIDs {
		weight, ok := prefs[genreID]
		if !ok {
			weight = baselineGenreWeight
		}
		sum += weight
	}
	score := sum / float64(len(genreIDs))

	score *= 0.7 + 0.3*(m.VoteAverage/10)
	score *= 0.8 + 0.2*(m.Popularity/100)
	return score
}

// persistScores upserts one recommendation row per scored candidate.
// Failures are logged and otherwise ignored.
func persistScores(ctx context.Context, sink Sink, log zerolog.Logger, userID int64, scored []ScoredMovie, recType domain.RecommendationType) {
	if sink == nil {
		return
	}
	for _, sm := range scored {
		err := sink.UpsertRecommendation(ctx, domain.Recommendation{
			UserID:  userID,
			MovieID: sm.MovieID,
			Score:   sm.Score,
			Type:    recType,
		})
		if err != nil {
			log.Warn().Err(err).
				Int64("user_id", userID).
				Int64("movie_id", sm.MovieID).
				Str("type", string(recType)).
				Msg("recommendation upsert failed")
		}
	}
}
