package ports

import (
	"context"

	"github.com/diycomponents/storefront/internal/core/domain"
)

// CartService keeps the locally held cart snapshot consistent with the
// server-authoritative cart. Every mutation issues the remote call, then
// re-fetches the full cart and replaces the snapshot wholesale; no
// operation computes its post-condition locally (Clear excepted, where the
// post-condition is known to be empty).
type CartService interface {
	// Refresh fetches the authoritative cart. It is a silent no-op when
	// unauthenticated; on failure it logs and keeps the previous snapshot.
	Refresh(ctx context.Context)

	Add(ctx context.Context, sku string, quantity int) error
	UpdateQuantity(ctx context.Context, sku string, quantity int) error
	Remove(ctx context.Context, sku string) error
	Clear(ctx context.Context) error

	// Snapshot returns a copy of the current server-confirmed cart.
	Snapshot() domain.CartSnapshot

	// PurchasableCount counts non-wishlist lines in the current snapshot.
	PurchasableCount() int
}
