package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aarav-crypto/movie-recommender/internal/cache"
	"github.com/aarav-crypto/movie-recommender/internal/config"
	"github.com/aarav-crypto/movie-recommender/internal/handler"
	"github.com/aarav-crypto/movie-recommender/internal/logging"
	"github.com/aarav-crypto/movie-recommender/internal/recommender"
	"github.com/aarav-crypto/movie-recommender/internal/repository"
	"github.com/aarav-crypto/movie-recommender/internal/router"
	"github.com/aarav-crypto/movie-recommender/internal/service"
	"github.com/aarav-crypto/movie-recommender/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logging.Logger()
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.With("main")

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.Database.PoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}
	log.Info().Msg("migrations applied")

	// ------------ Seed Data ---------------
	if err := checkSeed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	resultCache := cache.New(redisClient, cfg.Cache.TTL)
	if err := resultCache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis not reachable")
	}
	log.Info().Msg("connected to Redis")

	// ------------ Recommendation Engine ---------------
	repo := repository.New(pool)

	defaultKind, err := recommender.ParseKind(cfg.Recommender.Engine)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid engine configuration")
	}
	engines := recommender.NewSet(repo, repo, recommender.Options{
		CatalogSize:  cfg.Recommender.CatalogSize,
		UniverseSize: cfg.Recommender.UniverseSize,
	})

	// Requests pick their engine per call, so warm every kind. The hybrid
	// shares the other two instances and initializes them both.
	initCtx, cancel := context.WithTimeout(ctx, cfg.Recommender.InitTimeout)
	err = engines[recommender.KindHybrid].Initialize(initCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("engine initialization failed")
	}
	log.Info().Str("default_engine", string(defaultKind)).Msg("recommendation engines ready")

	// ---------------- Server --------------------
	svc := service.New(engines, defaultKind, repo, resultCache)
	h := handler.NewHandler(svc)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.Setup(h, cfg.Server.RequestTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log := logging.With("main")
		log.Info().Msgf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		log := logging.With("main")
		log.Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
