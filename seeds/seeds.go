// Package seeds populates an empty database with a deterministic sample
// catalog, user population, ratings and watch history so every engine has
// signal to score with out of the box.
package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	numUsers     = 20
	numMovies    = 50
	numRatings   = 250
	numWatches   = 200
	genreCount   = 5
	maxGenresPer = 3
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	log := logging.With("seed")
	rng := rand.New(rand.NewSource(42))

	log.Info().Msg("truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE recommendations, watch_history, ratings, movie_genres, genres, users, movies
		RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Msg("inserting genres")
	if err := seedGenres(ctx, pool); err != nil {
		return fmt.Errorf("seed genres: %w", err)
	}

	log.Info().Msg("inserting movies")
	if err := seedMovies(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed movies: %w", err)
	}

	log.Info().Msg("inserting users")
	if err := seedUsers(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Msg("inserting ratings")
	if err := seedRatings(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed ratings: %w", err)
	}

	log.Info().Msg("inserting watch history")
	if err := seedWatchHistory(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed watch history: %w", err)
	}

	log.Info().Msg("seeding complete")
	return nil
}

func seedGenres(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO genres (name) VALUES
		('Action'), ('Drama'), ('Sci-Fi'), ('Thriller'), ('Crime')
	`)
	return err
}

// The first five movies mirror a well-known catalog slice with fixed
// genre links; the rest is a generated long tail.
func seedMovies(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	type sample struct {
		title    string
		overview string
		pop      float64
		vote     float64
		runtime  int
		released string
		genres   []int
	}
	samples := []sample{
		{"The Matrix", "A computer hacker learns the true nature of his reality.", 100.0, 8.7, 136, "1999-03-31", []int{1, 3}},
		{"Inception", "A thief plants an idea in a sleeping mind.", 95.0, 8.4, 148, "2010-07-16", []int{1, 3, 4}},
		{"The Shawshank Redemption", "Two imprisoned men find redemption through decency.", 90.0, 8.7, 142, "1994-09-23", []int{2}},
		{"The Dark Knight", "Batman faces the Joker's chaos in Gotham.", 88.0, 8.5, 152, "2008-07-18", []int{1, 2, 4}},
		{"Pulp Fiction", "Four tales of violence and redemption intertwine.", 85.0, 8.5, 154, "1994-10-14", []int{2, 5}},
	}

	fillers := []string{
		"Edge of the Grid", "Silent Verdict", "Redline Protocol", "The Last Orbit",
		"Broken Signal", "Cold Harbor", "Night Circuit", "The Long Fall",
		"Static Horizon", "Paper Empire", "Glass Motive", "Second Daylight",
		"The Hollow Code", "Iron Meridian", "Vanishing Act", "Deep Current",
	}
	for i := len(samples); i < numMovies; i++ {
		filler := fillers[i%len(fillers)]
		title := fmt.Sprintf("%s %d", filler, i/len(fillers)+1)
		nGenres := rng.Intn(maxGenresPer) + 1
		genres := rng.Perm(genreCount)[:nGenres]
		for j := range genres {
			genres[j]++
		}
		samples = append(samples, sample{
			title:    title,
			overview: fmt.Sprintf("Feature film #%d from the generated catalog.", i+1),
			pop:      math.Round(powerLawScore(rng)*10000) / 100,
			vote:     math.Round((4+rng.Float64()*5)*10) / 10,
			runtime:  90 + rng.Intn(70),
			released: time.Now().AddDate(0, 0, -rng.Intn(9000)).Format("2006-01-02"),
			genres:   genres,
		})
	}

	rows := []string{}
	args := []any{}
	for _, s := range samples {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, s.title, s.overview, s.pop, s.vote, s.runtime, s.released)
	}
	query := "INSERT INTO movies (title, overview, popularity, vote_average, runtime, release_date) VALUES " +
		strings.Join(rows, ", ")
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return err
	}

	rows = rows[:0]
	args = args[:0]
	for i, s := range samples {
		for _, g := range s.genres {
			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
			args = append(args, i+1, g)
		}
	}
	query = "INSERT INTO movie_genres (movie_id, genre_id) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}
	for i := range numUsers {
		username := fmt.Sprintf("moviefan%02d", i+1)
		email := fmt.Sprintf("%s@example.com", username)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, username, email, createdAt)
	}
	query := "INSERT INTO users (username, email, created_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedRatings(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	seen := make(map[[2]int64]bool)

	rows := []string{}
	args := []any{}
	for range numRatings {
		userID := skewedID(rng, numUsers, 1.5)
		movieID := skewedID(rng, numMovies, 1.3)

		key := [2]int64{userID, movieID}
		if seen[key] {
			continue
		}
		seen[key] = true

		rating := float64(rng.Intn(5) + 1)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, userID, movieID, rating, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}
	query := "INSERT INTO ratings (user_id, movie_id, rating, created_at) VALUES " +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedWatchHistory(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}
	for range numWatches {
		userID := skewedID(rng, numUsers, 1.5)
		movieID := skewedID(rng, numMovies, 1.3)

		completed := rng.Float64() < 0.6
		duration := 20 + rng.Intn(140)
		watchedAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, userID, movieID, duration, completed, watchedAt)
	}

	query := "INSERT INTO watch_history (user_id, movie_id, watch_duration, completed, watched_at) VALUES " +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

// skewedID picks an id in [1, n] with a power-law skew so a few users and
// movies carry most of the interactions.
func skewedID(rng *rand.Rand, n int, exp float64) int64 {
	id := int64(math.Ceil(math.Pow(rng.Float64(), exp) * float64(n)))
	return max(1, min(id, int64(n)))
}

func powerLawScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.01 {
		raw = 0.01
	}
	return raw
}
