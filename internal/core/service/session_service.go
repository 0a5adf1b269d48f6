package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

// SessionManager owns the authenticated-identity lifecycle for one
// visitor: credential acquisition, persistence, startup validation and
// invalidation. It is the single writer of session state; every other
// component reads copies and reacts to transitions.
type SessionManager struct {
	gateway ports.AuthGateway
	store   ports.CredentialStore
	notify  ports.Notifier
	log     zerolog.Logger

	mu        sync.Mutex
	session   domain.Session
	validated bool
	listeners []func(authenticated bool)
}

var _ ports.SessionService = (*SessionManager)(nil)

func NewSessionManager(gateway ports.AuthGateway, store ports.CredentialStore, notify ports.Notifier, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		gateway: gateway,
		store:   store,
		notify:  notify,
		log:     log,
	}
}

// ValidateStoredSession bootstraps the session from a previously stored
// credential with at most one profile call, once per manager. Best effort:
// it never reports failure to the caller.
//
// A definite rejection of the credential clears it; transport failures and
// 5xx leave the credential in place and the session unauthenticated, so a
// flaky connection at startup does not log the visitor out. This is a
// deliberate tightening of the upstream behaviour, which cleared the
// credential on any failure.
func (m *SessionManager) ValidateStoredSession(ctx context.Context) {
	m.mu.Lock()
	if m.validated {
		m.mu.Unlock()
		return
	}
	m.validated = true
	m.mu.Unlock()

	creds, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("credential load failed, starting unauthenticated")
		return
	}
	if !creds.Present() {
		return
	}

	user, err := m.gateway.Profile(ctx)
	if err != nil {
		if domain.Transient(err) {
			m.log.Warn().Err(err).Msg("startup validation hit a transient failure, keeping credential")
			return
		}
		m.log.Info().Err(err).Msg("stored credential rejected, clearing")
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.Warn().Err(clearErr).Msg("failed to clear rejected credential")
		}
		return
	}

	m.establish(creds.Token, user)
	m.log.Info().Str("user_id", user.ID).Msg("session restored from stored credential")
}

// Login authenticates against the remote endpoint, persists the credential
// and establishes the session. On failure the server's message (or a
// generic fallback) is surfaced and the error re-raised so the calling
// form stays editable. No automatic retry.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	token, user, err := m.gateway.Login(ctx, email, password)
	if err != nil {
		m.notify.Error(domain.UserMessage(err, "Login failed"))
		return err
	}

	creds := ports.Credentials{Token: token, Email: user.Email}
	if err := m.store.Save(ctx, creds); err != nil {
		// Without a persisted credential an established session would
		// violate the session invariant; fail the login instead.
		m.log.Error().Err(err).Msg("credential persist failed")
		m.notify.Error("Login failed")
		return err
	}

	m.establish(token, user)
	m.notify.Success("Welcome back!")
	m.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return nil
}

// Register creates an account. It never establishes a session: the account
// needs e-mail verification before its first login.
func (m *SessionManager) Register(ctx context.Context, input ports.RegisterInput) error {
	if err := m.gateway.Register(ctx, input); err != nil {
		m.notify.Error(domain.UserMessage(err, "Registration failed"))
		return err
	}
	m.notify.Success("Registration successful! Please check your email to verify your account.")
	return nil
}

// Logout tears down the credential and session synchronously. It never
// calls the network and always succeeds.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("credential clear failed during logout")
	}
	m.clear()
	m.notify.Info("You have been logged out")
}

// Invalidate is the central unauthorized-response policy: any authenticated
// call that sees a 401 lands here, regardless of which component made it.
func (m *SessionManager) Invalidate(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("credential clear failed during invalidation")
	}
	if m.clear() {
		m.notify.Error("Session expired. Please login again.")
		m.log.Info().Msg("session invalidated by remote rejection")
	}
}

// Current returns a copy of the session state.
func (m *SessionManager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// OnTransition registers fn to run on every unauthenticated↔authenticated
// transition. Listeners run synchronously on the transitioning call.
func (m *SessionManager) OnTransition(fn func(authenticated bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *SessionManager) establish(token string, user *domain.User) {
	m.mu.Lock()
	was := m.session.Authenticated()
	m.session = domain.Session{Token: token, User: user}
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	if !was {
		for _, fn := range listeners {
			fn(true)
		}
	}
}

// clear empties the session and reports whether a transition happened.
func (m *SessionManager) clear() bool {
	m.mu.Lock()
	was := m.session.Authenticated()
	m.session = domain.Session{}
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	if was {
		for _, fn := range listeners {
			fn(false)
		}
	}
	return was
}

// snapshotListeners must be called with mu held.
func (m *SessionManager) snapshotListeners() []func(bool) {
	out := make([]func(bool), len(m.listeners))
	copy(out, m.listeners)
	return out
}
