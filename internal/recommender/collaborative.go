package recommender

import (
	"context"
	"sort"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/rs/zerolog"
)

// CollaborativeScorer predicts ratings for unseen movies as the
// similarity-weighted average of neighbor ratings.
type CollaborativeScorer struct {
	snap    *Snapshot
	sink    Sink
	vectors map[int64]RatingVector
	sims    SimilarityMatrix
	log     zerolog.Logger
}

func NewCollaborativeScorer(snap *Snapshot, sink Sink, vectors map[int64]RatingVector, sims SimilarityMatrix) *CollaborativeScorer {
	return &CollaborativeScorer{
		snap:    snap,
		sink:    sink,
		vectors: vectors,
		sims:    sims,
		log:     logging.With("collaborative_scorer"),
	}
}

// Rank predicts a rating for every catalog movie the user has not rated
// and returns the strictly-positive predictions in descending order.
// Movies no neighbor has rated predict 0 and are dropped. Each kept
// prediction is upserted as a collaborative recommendation, best-effort.
func (s *CollaborativeScorer) Rank(ctx context.Context, userID int64, rated map[int64]bool) []ScoredMovie {
	scored := rankByNeighbors(s.snap, s.vectors, s.sims[userID], rated)
	persistScores(ctx, s.sink, s.log, userID, scored, domain.RecTypeCollaborative)
	return scored
}

// rankByNeighbors is the pure prediction pass. Candidates are walked in
// catalog (popularity) order with a stable sort, the same reproducible
// tiebreak the content scorer uses.
func rankByNeighbors(snap *Snapshot, vectors map[int64]RatingVector, neighbors map[int64]float64, rated map[int64]bool) []ScoredMovie {
	scored := make([]ScoredMovie, 0, len(snap.Movies))
	for i := range snap.Movies {
		movieID := snap.Movies[i].ID
		if rated[movieID] {
			continue
		}
		if predicted := predictRating(movieID, neighbors, vectors); predicted > 0 {
			scored = append(scored, ScoredMovie{MovieID: movieID, Score: predicted})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// predictRating averages neighbor ratings for the movie, weighted by
// similarity. Neighbors who never rated the movie contribute nothing; if
// none rated it the prediction is 0.
func predictRating(movieID int64, neighbors map[int64]float64, vectors map[int64]RatingVector) float64 {
	var weightedSum, similaritySum float64
	for neighborID, sim := range neighbors {
		rating, ok := vectors[neighborID][movieID]
		if !ok {
			continue
		}
		weightedSum += sim * rating
		similaritySum += sim
	}

	if similaritySum == 0 {
		return 0
	}
	return weightedSum / similaritySum
}
