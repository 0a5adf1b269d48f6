package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

// ErrCacheMiss is returned by CatalogCache.Get when the key is absent.
var ErrCacheMiss = errors.New("catalog cache miss")

// CatalogCache abstracts the TTL cache in front of the remote catalog
// (Redis in production).
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
}

// CatalogService serves public catalog reads. Hot responses are cached and
// concurrent misses for the same key are collapsed through singleflight so
// a cold or expired key produces a single upstream call.
type CatalogService struct {
	gateway ports.CatalogGateway
	cache   CatalogCache
	sfg     singleflight.Group
	log     zerolog.Logger
}

var _ ports.CatalogService = (*CatalogService)(nil)

func NewCatalogService(gateway ports.CatalogGateway, cache CatalogCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{gateway: gateway, cache: cache, log: log}
}

func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return cached(ctx, s, "catalog:products", s.gateway.Products)
}

func (s *CatalogService) Product(ctx context.Context, sku string) (*domain.Product, error) {
	return cached(ctx, s, "catalog:product:"+sku, func(ctx context.Context) (*domain.Product, error) {
		return s.gateway.Product(ctx, sku)
	})
}

// Search is deliberately uncached: the query space is unbounded and search
// results would evict the hot list/category keys.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.gateway.Search(ctx, query)
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, slug string) ([]domain.Product, error) {
	return cached(ctx, s, "catalog:category:"+slug, func(ctx context.Context) ([]domain.Product, error) {
		return s.gateway.ProductsByCategory(ctx, slug)
	})
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s, "catalog:categories", s.gateway.Categories)
}

func (s *CatalogService) FilteredCategories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s, "catalog:categories:filtered", s.gateway.FilteredCategories)
}

// cached looks key up in the cache and falls through to fetch on a miss,
// collapsing concurrent misses. The cache write happens off the request
// path; a cache failure only costs the round trip.
func cached[T any](ctx context.Context, s *CatalogService, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, err, _ := s.sfg.Do(key, func() (any, error) {
		var hit T
		cacheErr := s.cache.Get(ctx, key, &hit)
		if cacheErr == nil {
			return hit, nil
		}
		if !errors.Is(cacheErr, ErrCacheMiss) {
			s.log.Warn().Err(cacheErr).Str("key", key).Msg("catalog cache read failed")
		}

		fresh, err := fetch(ctx)
		if err != nil {
			return fresh, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), key, fresh); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
			}
		}()

		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
