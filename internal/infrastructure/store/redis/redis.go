// Package redis holds the storefront's Redis-backed infrastructure: the
// shared connection, the per-visitor credential store and the catalog
// cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultPoolSize = 10
)

// Config captures the settings for establishing the shared Redis
// connection. The pool is shared by every visitor's credential store and
// the catalog cache, so it is sized for the whole process, not per
// visitor.
type Config struct {
	Addr         string
	DB           int
	Timeout      time.Duration
	PoolSize     int
	MinIdleConns int
}

// Connect initialises the Redis client and validates connectivity with a
// ping. Defaults are applied for the timeout and pool size when none are
// provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
