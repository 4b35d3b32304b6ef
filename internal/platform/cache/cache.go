// Package cache provides a small Redis-backed cache used for hot dashboard
// reads. All operations are nil-safe: a nil *Cache behaves like a miss, so
// callers never have to branch on whether Redis is configured.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	client *redis.Client
}

// New connects to Redis using a redis:// URL. Returns an error when the URL
// is malformed or the server is unreachable.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// Get returns the cached value for key, or ("", false) on a miss or when the
// cache is disabled.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with a TTL. Errors are swallowed: the cache is
// an optimization, never a source of truth.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key, value, ttl)
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key)
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
