// Package redis implements the volatile cache tier: code→URL entries with a
// TTL and the best-effort click counter. Every failure is reported as
// entity.ErrCacheUnavailable; callers treat it as a cache miss, so a broken
// cache degrades latency but never correctness.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shortify/shortify/internal/entity"
)

// clicksKeyPrefix keeps counter keys in a namespace separate from the URL
// mapping entries, which are stored under the bare short code.
const clicksKeyPrefix = "clicks:"

type URLCache struct {
	client *redis.Client
}

func NewURLCache(client *redis.Client) *URLCache {
	return &URLCache{client: client}
}

// Get returns the cached target URL for shortCode. A miss is ("", nil); only
// an unavailable cache produces an error.
func (c *URLCache) Get(ctx context.Context, shortCode string) (string, error) {
	const op = "adapter.cache.redis.URLCache.Get"

	targetURL, err := c.client.Get(ctx, shortCode).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, entity.ErrCacheUnavailable, err)
	}

	return targetURL, nil
}

func (c *URLCache) Set(ctx context.Context, shortCode, targetURL string, ttl time.Duration) error {
	const op = "adapter.cache.redis.URLCache.Set"

	if err := c.client.Set(ctx, shortCode, targetURL, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrCacheUnavailable, err)
	}

	return nil
}

func (c *URLCache) Delete(ctx context.Context, shortCode string) error {
	const op = "adapter.cache.redis.URLCache.Delete"

	if err := c.client.Del(ctx, shortCode).Err(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrCacheUnavailable, err)
	}

	return nil
}

// IncrementClicks bumps the counter under clicks:<shortCode> and returns the
// new value. The counter is non-authoritative; the durable click log is.
func (c *URLCache) IncrementClicks(ctx context.Context, shortCode string) (int64, error) {
	const op = "adapter.cache.redis.URLCache.IncrementClicks"

	count, err := c.client.Incr(ctx, clicksKeyPrefix+shortCode).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, entity.ErrCacheUnavailable, err)
	}

	return count, nil
}
