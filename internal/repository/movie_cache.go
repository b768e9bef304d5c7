package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/movie-service/internal/domain"
)

// ErrCacheMiss is returned when a movie is not cached.
var ErrCacheMiss = errors.New("cache miss")

// MovieCache keeps recently read movies close to the API.
type MovieCache interface {
	Get(ctx context.Context, id int64) (*domain.Movie, error)
	Set(ctx context.Context, movie *domain.Movie) error
	Invalidate(ctx context.Context, id int64) error
}

type redisMovieCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMovieCache returns a Redis-backed cache storing movies as JSON.
func NewRedisMovieCache(client *redis.Client, ttl time.Duration) MovieCache {
	return &redisMovieCache{client: client, ttl: ttl}
}

func movieKey(id int64) string {
	return fmt.Sprintf("movie:%d", id)
}

func (c *redisMovieCache) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	raw, err := c.client.Get(ctx, movieKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var movie domain.Movie
	if err := json.Unmarshal(raw, &movie); err != nil {
		return nil, fmt.Errorf("decode cached movie %d: %w", id, err)
	}
	return &movie, nil
}

func (c *redisMovieCache) Set(ctx context.Context, movie *domain.Movie) error {
	payload, err := json.Marshal(movie)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, movieKey(movie.ID), payload, c.ttl).Err()
}

func (c *redisMovieCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, movieKey(id)).Err()
}

type noopMovieCache struct{}

// NewNoopMovieCache returns a cache that never stores anything.
func NewNoopMovieCache() MovieCache {
	return noopMovieCache{}
}

func (noopMovieCache) Get(context.Context, int64) (*domain.Movie, error) { return nil, ErrCacheMiss }
func (noopMovieCache) Set(context.Context, *domain.Movie) error          { return nil }
func (noopMovieCache) Invalidate(context.Context, int64) error           { return nil }
