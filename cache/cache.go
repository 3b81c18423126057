package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix     = "kmsfl:"
	generationKey = "kmsfl-generation"
)

// Cache holds computed query results. All of them are derived from the store
// so the whole cache is dropped after every ingest.
type Cache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Generation is bumped by every Invalidate.
	Generation(ctx context.Context) (int64, error)
	Invalidate(ctx context.Context) error
	Close() error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the redis server at url, e.g. redis://localhost:6379/0.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return &redisCache{client: client, ttl: ttl}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error reading %s from cache: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("error decoding %s from cache: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding %s for cache: %w", key, err)
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

func (c *redisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error reading cache generation: %w", err)
	}
	return gen, nil
}

// Invalidate moves the cache to a new generation, then drops the entries of
// the old ones.
func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("error bumping cache generation: %w", err)
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()

	keys := make([]string, 0, 64)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error invalidating cache: %w", err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// NewNop returns a cache that never holds anything, used when no redis server
// is configured.
func NewNop() Cache {
	return nopCache{}
}

type nopCache struct{}

func (nopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) Set(context.Context, string, any) error         { return nil }
func (nopCache) Generation(context.Context) (int64, error)      { return 0, nil }
func (nopCache) Invalidate(context.Context) error               { return nil }
func (nopCache) Close() error                                   { return nil }

// Remember returns the cached value for key, or calls load and caches its
// result. Cache failures are logged and never stop load from being used.
//
// Entries are stored under the generation read before load runs, so a result
// loaded before an Invalidate is never served after it.
func Remember[T any](ctx context.Context, c Cache, log logrus.FieldLogger, key string, load func() (T, error)) (T, error) {
	gen, err := c.Generation(ctx)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
		return load()
	}
	key = fmt.Sprintf("%s@%d", key, gen)

	var result T
	found, err := c.Get(ctx, key, &result)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
	}
	if found {
		return result, nil
	}

	result, err = load()
	if err != nil {
		return result, err
	}
	if err := c.Set(ctx, key, result); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
	return result, nil
}
