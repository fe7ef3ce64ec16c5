package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aarav-crypto/movie-recommender/internal/domain"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache stores final hydrated recommendation lists keyed by engine, user
// and limit. It only ever sees the output of a full scoring pass; the
// engines themselves stay cache-free.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func buildKey(engine string, userID int64, limit int) string {
	return fmt.Sprintf("rec:%s:user:%d:limit:%d", engine, userID, limit)
}

// Get returns the cached list for the key, or found=false on a miss.
func (c *Cache) Get(ctx context.Context, engine string, userID int64, limit int) ([]domain.Movie, bool, error) {
	key := buildKey(engine, userID, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var movies []domain.Movie
	if err := json.Unmarshal([]byte(val), &movies); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached recommendations %s: %w", key, err)
	}
	return movies, true, nil
}

func (c *Cache) Set(ctx context.Context, engine string, userID int64, limit int, movies []domain.Movie) error {
	key := buildKey(engine, userID, limit)
	val, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// ClearUserCache drops every cached list for the user, across engines and
// limits. Called when the user rates or watches something.
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:*:user:%d:limit:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
