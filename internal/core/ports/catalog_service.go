package ports

import (
	"context"

	"github.com/diycomponents/storefront/internal/core/domain"
)

// CatalogService serves public catalog reads, caching hot responses in
// front of the remote API.
type CatalogService interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, sku string) (*domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, slug string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	FilteredCategories(ctx context.Context) ([]domain.Category, error)
}
