package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diycomponents/storefront/internal/api/metrics"
	"github.com/diycomponents/storefront/internal/core/service"
)

const defaultCacheTTL = 5 * time.Minute

// CatalogCache is a JSON-over-Redis TTL cache for catalog responses.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ service.CatalogCache = (*CatalogCache)(nil)

// NewCatalogCache wraps client with the given entry TTL; non-positive
// selects the default.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return service.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
	return nil
}

func (c *CatalogCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
