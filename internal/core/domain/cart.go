package domain

import "errors"

var ErrQuantityInvalid = errors.New("quantity must be at least 1")
var ErrMutationInFlight = errors.New("cart mutation already in flight for this item")

// CartItem is a single line of the server-authoritative cart.
// JSON field names follow the remote API's contract.
type CartItem struct {
	SKU          string  `json:"SKU"`
	DisplayName  string  `json:"displayName"`
	Image        string  `json:"image"`
	Manufacturer string  `json:"manufacturer"`
	Supplier     string  `json:"supplier"`
	ListPrice    float64 `json:"list_price"`
	SellingPrice float64 `json:"selling_price,omitempty"`
	Quantity     int     `json:"quantity"`
	Wishlist     bool    `json:"isWishlist"`
}

// UnitPrice returns the price a purchasable line is actually sold at:
// the discounted selling price when present, the list price otherwise.
func (i CartItem) UnitPrice() float64 {
	if i.SellingPrice > 0 {
		return i.SellingPrice
	}
	return i.ListPrice
}

// CartSnapshot is the server-confirmed cart at a point in time. It is
// replaced wholesale after every successful mutation round-trip, never
// patched in place. Generation increases on every replacement so stale
// refresh responses can be discarded.
type CartSnapshot struct {
	Items      []CartItem `json:"items"`
	Generation uint64     `json:"-"`
}

// Find returns the line item for sku, or nil when absent.
func (s CartSnapshot) Find(sku string) *CartItem {
	for idx := range s.Items {
		if s.Items[idx].SKU == sku {
			return &s.Items[idx]
		}
	}
	return nil
}

// PurchasableCount counts line items with the wishlist flag unset. It is
// always derived from the snapshot, never stored independently.
func (s CartSnapshot) PurchasableCount() int {
	n := 0
	for _, item := range s.Items {
		if !item.Wishlist {
			n++
		}
	}
	return n
}
