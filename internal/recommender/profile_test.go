package recommender

import (
	"math"
	"testing"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
)

func TestBaselineWeights(t *testing.T) {
	snap := mustSnapshot(scenarioStore())

	prefs := BuildPreferenceProfile(snap, nil, nil)

	if len(prefs) != 5 {
		t.Fatalf("expected 5 genres, got %d", len(prefs))
	}
	for genreID, weight := range prefs {
		if weight != 1.0 {
			t.Errorf("genre %d: baseline weight = %v, want exactly 1.0", genreID, weight)
		}
	}
}

func TestRatingSignal(t *testing.T) {
	snap := mustSnapshot(scenarioStore())

	// A 5/5 on The Matrix adds (5/5)*2 = 2.0 to Action and Sci-Fi.
	prefs := BuildPreferenceProfile(snap, []domain.Rating{
		{UserID: 1, MovieID: 1, Value: 5},
	}, nil)

	if got := prefs[1]; got != 3.0 {
		t.Errorf("Action weight = %v, want 3.0", got)
	}
	if got := prefs[3]; got != 3.0 {
		t.Errorf("Sci-Fi weight = %v, want 3.0", got)
	}
	if got := prefs[2]; got != 1.0 {
		t.Errorf("Drama weight = %v, want untouched 1.0", got)
	}
}

func TestWatchSignal(t *testing.T) {
	snap := mustSnapshot(scenarioStore())

	// Completed watch of Shawshank adds 1.5 to Drama; a partial watch of
	// the same movie adds another 0.5. Multiple sessions all count.
	prefs := BuildPreferenceProfile(snap, nil, []domain.WatchHistoryEntry{
		{UserID: 1, MovieID: 3, Completed: true},
		{UserID: 1, MovieID: 3, Completed: false},
	})

	if got := prefs[2]; got != 3.0 {
		t.Errorf("Drama weight = %v, want 3.0", got)
	}
}

func TestWeightsNeverNegative(t *testing.T) {
	snap := mustSnapshot(scenarioStore())

	prefs := BuildPreferenceProfile(snap, []domain.Rating{
		{UserID: 1, MovieID: 1, Value: 1}, // lowest rating still adds weight
	}, nil)

	for genreID, weight := range prefs {
		if weight < 1.0 || math.IsNaN(weight) {
			t.Errorf("genre %d: weight = %v, want >= 1.0", genreID, weight)
		}
	}
}

func TestDeterministicProfile(t *testing.T) {
	snap := mustSnapshot(scenarioStore())
	ratings := []domain.Rating{{UserID: 1, MovieID: 1, Value: 4}, {UserID: 1, MovieID: 5, Value: 2}}
	history := []domain.WatchHistoryEntry{{UserID: 1, MovieID: 2, Completed: true}}

	a := BuildPreferenceProfile(snap, ratings, history)
	b := BuildPreferenceProfile(snap, ratings, history)

	for genreID, weight := range a {
		if b[genreID] != weight {
			t.Errorf("genre %d: recompute gave %v then %v", genreID, weight, b[genreID])
		}
	}
}
