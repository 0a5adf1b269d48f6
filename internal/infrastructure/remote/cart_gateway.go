package remote

import (
	"context"
	"net/url"

	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

// CartGateway implements ports.CartGateway. Every call rides the stored
// bearer credential; a 401 anywhere here flows into the client's central
// unauthorized policy.
type CartGateway struct {
	client *Client
}

var _ ports.CartGateway = (*CartGateway)(nil)

func NewCartGateway(client *Client) *CartGateway {
	return &CartGateway{client: client}
}

func (g *CartGateway) Fetch(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := g.client.get(ctx, "cart.fetch", "/cart", nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

type addItemRequest struct {
	SKU      string `json:"SKU"`
	Quantity int    `json:"quantity"`
}

func (g *CartGateway) Add(ctx context.Context, sku string, quantity int) error {
	return g.client.post(ctx, "cart.add", "/cart", addItemRequest{SKU: sku, Quantity: quantity}, nil, true)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (g *CartGateway) UpdateQuantity(ctx context.Context, sku string, quantity int) error {
	return g.client.put(ctx, "cart.update", "/cart/"+url.PathEscape(sku), updateQuantityRequest{Quantity: quantity}, nil, true)
}

func (g *CartGateway) Remove(ctx context.Context, sku string) error {
	return g.client.delete(ctx, "cart.remove", "/cart/"+url.PathEscape(sku), true)
}

func (g *CartGateway) Clear(ctx context.Context) error {
	return g.client.delete(ctx, "cart.clear", "/cart", true)
}
