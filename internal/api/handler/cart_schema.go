package handler

import (
	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/pkg/currency"
)

type addToCartRequest struct {
	SKU      string `json:"SKU"      validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartSummary is the priced view of the purchasable lines. All arithmetic
// runs through the currency engine; wishlist-flagged lines contribute
// nothing.
type cartSummary struct {
	Subtotal          float64 `json:"subtotal"`
	TaxPercent        float64 `json:"tax_percent"`
	Tax               float64 `json:"tax"`
	Total             float64 `json:"total"`
	FormattedSubtotal string  `json:"formatted_subtotal"`
	FormattedTotal    string  `json:"formatted_total"`
}

type cartResponse struct {
	Items            []domain.CartItem `json:"items"`
	PurchasableCount int               `json:"purchasable_count"`
	Summary          cartSummary       `json:"summary"`
}

func newCartResponse(snapshot domain.CartSnapshot, gstPercent float64) cartResponse {
	items := snapshot.Items
	if items == nil {
		items = []domain.CartItem{}
	}

	subtotal := 0.0
	for _, item := range items {
		if item.Wishlist {
			continue
		}
		subtotal = currency.Add(subtotal, currency.Multiply(item.UnitPrice(), float64(item.Quantity)))
	}

	tax := currency.PercentageOf(subtotal, gstPercent)
	total := currency.AddTax(subtotal, gstPercent)

	return cartResponse{
		Items:            items,
		PurchasableCount: snapshot.PurchasableCount(),
		Summary: cartSummary{
			Subtotal:          subtotal,
			TaxPercent:        gstPercent,
			Tax:               tax,
			Total:             total,
			FormattedSubtotal: currency.ToCurrency(subtotal, currency.DefaultPrecision),
			FormattedTotal:    currency.ToCurrency(total, currency.DefaultPrecision),
		},
	}
}
