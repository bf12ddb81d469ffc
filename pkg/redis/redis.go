package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Option func(*redis.Options)

func WithPoolSize(n int) Option {
	return func(o *redis.Options) {
		o.PoolSize = n
	}
}

// New connects to redis using a redis:// URL and verifies the connection
// with a ping.
func New(ctx context.Context, url string, opts ...Option) (*redis.Client, error) {
	const op = "redis.New"

	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse redis url: %w", op, err)
	}

	for _, opt := range opts {
		opt(options)
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: failed to ping redis: %w", op, err)
	}

	return client, nil
}
