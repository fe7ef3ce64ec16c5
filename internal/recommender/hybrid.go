package recommender

import (
	"context"
	"sort"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/rs/zerolog"
)

const (
	contentEngineWeight       = 0.4
	collaborativeEngineWeight = 0.6
)

// HybridBlender fuses the content and collaborative rankings by list
// position rather than raw score magnitude. This is a deliberate
// two-engine weighted rank fusion, not a unified model: scores from the
// two engines live on different scales, positions do not.
type HybridBlender struct {
	sink Sink
	log  zerolog.Logger
}

func NewHybridBlender(sink Sink) *HybridBlender {
	return &HybridBlender{sink: sink, log: logging.With("hybrid_blender")}
}

// Blend merges two already-truncated rankings. An item at 0-indexed rank
// i in a list of length N contributes (N-i)/N x engine weight; a movie on
// both lists gets the sum. The merged list is upserted as hybrid
// recommendations using the final summed scores, so an overlapped movie
// is persisted with its corrected total, never a partial contribution.
func (b *HybridBlender) Blend(ctx context.Context, userID int64, content, collaborative []ScoredMovie) []ScoredMovie {
	fused := fuseRankings(content, collaborative)
	persistScores(ctx, b.sink, b.log, userID, fused, domain.RecTypeHybrid)
	return fused
}

func fuseRankings(content, collaborative []ScoredMovie) []ScoredMovie {
	type contribution struct {
		order int
		score float64
	}
	combined := make(map[int64]*contribution, len(content)+len(collaborative))
	order := 0

	add := func(list []ScoredMovie, weight float64) {
		n := float64(len(list))
		for i, sm := range list {
			score := (n - float64(i)) / n * weight
			if c, ok := combined[sm.MovieID]; ok {
				c.score += score
				continue
			}
			combined[sm.MovieID] = &contribution{order: order, score: score}
			order++
		}
	}
	add(content, contentEngineWeight)
	add(collaborative, collaborativeEngineWeight)

	fused := make([]ScoredMovie, 0, len(combined))
	for movieID, c := range combined {
		fused = append(fused, ScoredMovie{MovieID: movieID, Score: c.score})
	}

	// First-seen order breaks score ties, keeping the merge reproducible.
	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return combined[fused[i].MovieID].order < combined[fused[j].MovieID].order
	})
	return fused
}
