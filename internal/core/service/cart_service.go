package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

// CartSynchronizer keeps one visitor's cart snapshot consistent with the
// server-authoritative cart. The correctness mechanism is the round trip:
// every mutation issues the remote call and, on success, re-fetches the
// full cart and replaces the snapshot wholesale. Nothing is patched
// locally, so client and server cannot drift.
//
// Rapid repeated clicks are hardened two ways: mutations are deduplicated
// per SKU through an in-flight set, and refresh responses carry the
// snapshot generation they started from so a superseded response is
// discarded instead of clobbering newer state.
type CartSynchronizer struct {
	gateway ports.CartGateway
	session ports.SessionService
	notify  ports.Notifier
	log     zerolog.Logger

	mu       sync.Mutex
	snapshot domain.CartSnapshot
	inflight map[string]struct{}
}

var _ ports.CartService = (*CartSynchronizer)(nil)

// NewCartSynchronizer builds the synchronizer and couples it to the
// session lifecycle: it refreshes when the session becomes authenticated
// and clears to empty, synchronously and without a network call, when it
// becomes unauthenticated.
func NewCartSynchronizer(gateway ports.CartGateway, session ports.SessionService, notify ports.Notifier, log zerolog.Logger) *CartSynchronizer {
	c := &CartSynchronizer{
		gateway:  gateway,
		session:  session,
		notify:   notify,
		log:      log,
		inflight: make(map[string]struct{}),
	}
	session.OnTransition(func(authenticated bool) {
		if authenticated {
			c.Refresh(context.Background())
		} else {
			c.replace(nil)
		}
	})
	return c
}

// Refresh fetches the authoritative cart and replaces the snapshot. It is
// a silent no-op when unauthenticated. On failure the previous snapshot is
// kept: stale-but-present beats blanking the cart on a transient error.
func (c *CartSynchronizer) Refresh(ctx context.Context) {
	if !c.session.Current().Authenticated() {
		return
	}

	c.mu.Lock()
	started := c.snapshot.Generation
	c.mu.Unlock()

	items, err := c.gateway.Fetch(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("cart fetch failed, keeping previous snapshot")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot.Generation != started {
		// A newer replacement landed while this fetch was in the air.
		c.log.Debug().Uint64("generation", started).Msg("discarding superseded cart response")
		return
	}
	c.snapshot = domain.CartSnapshot{Items: items, Generation: started + 1}
}

// Add puts quantity units of sku into the remote cart. When the visitor is
// unauthenticated it fails fast with a user-facing notice and performs no
// network call.
func (c *CartSynchronizer) Add(ctx context.Context, sku string, quantity int) error {
	if !c.session.Current().Authenticated() {
		c.notify.Error("Please login to add items to cart")
		return domain.ErrNotAuthenticated
	}
	if quantity < 1 {
		return domain.ErrQuantityInvalid
	}
	release, err := c.acquire(sku)
	if err != nil {
		return err
	}
	defer release()

	if err := c.gateway.Add(ctx, sku, quantity); err != nil {
		c.notify.Error(domain.UserMessage(err, "Failed to add item to cart"))
		return err
	}

	c.Refresh(ctx)
	c.notify.Success("Item added to cart")
	return nil
}

// UpdateQuantity changes the quantity of an existing line. Quantity must
// stay at least 1: decrements to zero are rejected before any network call
// and must be routed to Remove by the caller. The follow-up refresh is
// silent so frequent quantity taps do not spam notifications.
func (c *CartSynchronizer) UpdateQuantity(ctx context.Context, sku string, quantity int) error {
	if quantity < 1 {
		return domain.ErrQuantityInvalid
	}
	if !c.session.Current().Authenticated() {
		return domain.ErrNotAuthenticated
	}
	release, err := c.acquire(sku)
	if err != nil {
		return err
	}
	defer release()

	if err := c.gateway.UpdateQuantity(ctx, sku, quantity); err != nil {
		c.notify.Error("Failed to update quantity")
		return err
	}

	c.Refresh(ctx)
	return nil
}

// Remove deletes a line from the remote cart.
func (c *CartSynchronizer) Remove(ctx context.Context, sku string) error {
	if !c.session.Current().Authenticated() {
		return domain.ErrNotAuthenticated
	}
	release, err := c.acquire(sku)
	if err != nil {
		return err
	}
	defer release()

	if err := c.gateway.Remove(ctx, sku); err != nil {
		c.notify.Error("Failed to remove item")
		return err
	}

	c.Refresh(ctx)
	c.notify.Success("Item removed from cart")
	return nil
}

// Clear empties the remote cart. The post-condition is known, so the local
// snapshot is set to empty directly instead of re-fetching.
func (c *CartSynchronizer) Clear(ctx context.Context) error {
	if !c.session.Current().Authenticated() {
		return domain.ErrNotAuthenticated
	}

	if err := c.gateway.Clear(ctx); err != nil {
		c.notify.Error("Failed to clear cart")
		return err
	}

	c.replace(nil)
	c.notify.Success("Cart cleared")
	return nil
}

// Snapshot returns a copy of the current server-confirmed cart.
func (c *CartSynchronizer) Snapshot() domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.CartItem, len(c.snapshot.Items))
	copy(items, c.snapshot.Items)
	return domain.CartSnapshot{Items: items, Generation: c.snapshot.Generation}
}

// PurchasableCount is derived from the snapshot on every call, never
// stored: a second source of truth could desync from the snapshot.
func (c *CartSynchronizer) PurchasableCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.PurchasableCount()
}

// acquire marks sku as having a mutation in flight.
func (c *CartSynchronizer) acquire(sku string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[sku]; busy {
		return nil, domain.ErrMutationInFlight
	}
	c.inflight[sku] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inflight, sku)
		c.mu.Unlock()
	}, nil
}

func (c *CartSynchronizer) replace(items []domain.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = domain.CartSnapshot{Items: items, Generation: c.snapshot.Generation + 1}
}
