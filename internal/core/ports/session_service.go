package ports

import (
	"context"

	"github.com/diycomponents/storefront/internal/core/domain"
)

// SessionService owns the authenticated-identity lifecycle. All session
// mutation funnels through it; everything else reads immutable copies.
type SessionService interface {
	// ValidateStoredSession is the best-effort startup bootstrap: if a
	// credential is stored it makes exactly one profile call and either
	// establishes the session or handles the failure. It never returns an
	// error to its caller and is a no-op after the first invocation.
	ValidateStoredSession(ctx context.Context)

	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, input RegisterInput) error

	// Logout tears down local state synchronously. No network call is made
	// and it cannot fail.
	Logout(ctx context.Context)

	// Invalidate is the target of the central unauthorized-response policy:
	// it clears the stored credential and the in-memory session.
	Invalidate(ctx context.Context)

	// Current returns a copy of the session state.
	Current() domain.Session

	// OnTransition registers a listener invoked whenever the session moves
	// between unauthenticated and authenticated.
	OnTransition(fn func(authenticated bool))
}
