package recommender

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RatingVector maps movie id to a user's rating value.
type RatingVector map[int64]float64

// SimilarityMatrix maps user id to that user's positively-similar
// neighbors. Similarity values are in [0,1]; a missing entry means no
// edge. Immutable once built.
type SimilarityMatrix map[int64]map[int64]float64

// BuildSimilarityMatrix computes Pearson similarity for every user pair
// in vectors. The per-user rows are independent, so they are computed in
// parallel; ctx cancellation aborts the build. The cost is quadratic in
// the universe size, so callers bound that size.
func BuildSimilarityMatrix(ctx context.Context, vectors map[int64]RatingVector) (SimilarityMatrix, error) {
	userIDs := make([]int64, 0, len(vectors))
	for id := range vectors {
		userIDs = append(userIDs, id)
	}

	matrix := make(SimilarityMatrix, len(userIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, userID := range userIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			neighbors := make(map[int64]float64)
			for _, otherID := range userIDs {
				if otherID == userID {
					continue
				}
				if sim := pearson(vectors[userID], vectors[otherID]); sim > 0 {
					neighbors[otherID] = sim
				}
			}

			mu.Lock()
			matrix[userID] = neighbors
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}

// pearson computes the Pearson correlation coefficient over the movies
// both users rated, clamped to [0,1]. Disjoint rating sets and degenerate
// (zero variance) vectors both yield 0 rather than NaN; negative
// correlation means dissimilar taste and also yields 0.
func pearson(a, b RatingVector) float64 {
	var n float64
	var sumA, sumB, sumASq, sumBSq, sumAB float64

	for movieID, ra := range a {
		rb, ok := b[movieID]
		if !ok {
			continue
		}
		n++
		sumA += ra
		sumB += rb
		sumASq += ra * ra
		sumBSq += rb * rb
		sumAB += ra * rb
	}

	if n == 0 {
		return 0
	}

	num := sumAB - sumA*sumB/n
	den := math.Sqrt((sumASq - sumA*sumA/n) * (sumBSq - sumB*sumB/n))
	if den == 0 {
		return 0
	}

	// Rounding can push the ratio a hair past 1, so clamp both ends.
	return math.Min(1, math.Max(0, num/den))
}
