package remote

import (
	"context"
	"net/url"

	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

// CatalogGateway implements ports.CatalogGateway against the public
// product and category endpoints. No credential is attached.
type CatalogGateway struct {
	client *Client
}

var _ ports.CatalogGateway = (*CatalogGateway)(nil)

func NewCatalogGateway(client *Client) *CatalogGateway {
	return &CatalogGateway{client: client}
}

func (g *CatalogGateway) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := g.client.get(ctx, "catalog.products", "/product", nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

func (g *CatalogGateway) Product(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	if err := g.client.get(ctx, "catalog.product", "/product/"+url.PathEscape(sku), nil, &product, false); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *CatalogGateway) Search(ctx context.Context, query string) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("q", query)
	var products []domain.Product
	if err := g.client.get(ctx, "catalog.search", "/product/search", q, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

func (g *CatalogGateway) ProductsByCategory(ctx context.Context, slug string) ([]domain.Product, error) {
	var products []domain.Product
	if err := g.client.get(ctx, "catalog.category", "/product/category/"+url.PathEscape(slug), nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

func (g *CatalogGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := g.client.get(ctx, "catalog.categories", "/product/categories", nil, &categories, false); err != nil {
		return nil, err
	}
	return categories, nil
}

func (g *CatalogGateway) FilteredCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := g.client.get(ctx, "catalog.categories_filtered", "/product/categories/filtered", nil, &categories, false); err != nil {
		return nil, err
	}
	return categories, nil
}
