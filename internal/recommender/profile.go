package recommender

import "github.com/aarav-crypto/movie-recommender/internal/domain"

// GenrePreferenceVector maps genre id to an accumulated affinity weight.
// Every known genre starts at the 1.0 baseline and weights only increase,
// so a weight is never negative.
type GenrePreferenceVector map[int64]float64

const (
	baselineGenreWeight  = 1.0
	completedWatchWeight = 1.5
	partialWatchWeight   = 0.5
)

// BuildPreferenceProfile derives a user's genre affinities from their
// ratings and watch history. Each rating on a movie adds (value/5)*2 to
// every genre of that movie; each watch session adds 1.5 if completed,
// 0.5 otherwise. Pure function of its inputs, cheap to recompute per
// request.
func BuildPreferenceProfile(snap *Snapshot, ratings []domain.Rating, history []domain.WatchHistoryEntry) GenrePreferenceVector {
	prefs := make(GenrePreferenceVector, len(snap.Genres))
	for _, g := range snap.Genres {
		prefs[g.ID] = baselineGenreWeight
	}

	for _, r := range ratings {
		weight := (r.Value / 5.0) * 2
		for _, genreID := range snap.MovieGenres[r.MovieID] {
			addWeight(prefs, genreID, weight)
		}
	}

	for _, h := range history {
		weight := partialWatchWeight
		if h.Completed {
			weight = completedWatchWeight
		}
		for _, genreID := range snap.MovieGenres[h.MovieID] {
			addWeight(prefs, genreID, weight)
		}
	}

	return prefs
}

// addWeight increments a genre weight, seeding the baseline for genre ids
// that appear on movies but not in the genre universe.
func addWeight(prefs GenrePreferenceVector, genreID int64, weight float64) {
	current, ok := prefs[genreID]
	if !ok {
		current = baselineGenreWeight
	}
	prefs[genreID] = current + weight
}
