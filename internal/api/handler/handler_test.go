package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/api/visitor"
	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
	"github.com/diycomponents/storefront/internal/notify"
)

type stubSessionService struct {
	mu            sync.Mutex
	current       domain.Session
	loginErr      error
	registerErr   error
	validateCalls int
	loginCalls    int
	logoutCalls   int
}

func (s *stubSessionService) ValidateStoredSession(context.Context) {
	s.mu.Lock()
	s.validateCalls++
	s.mu.Unlock()
}

func (s *stubSessionService) Login(_ context.Context, email, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginCalls++
	if s.loginErr != nil {
		return s.loginErr
	}
	s.current = domain.Session{Token: "tok", User: &domain.User{ID: "u1", Email: email}}
	return nil
}

func (s *stubSessionService) Register(context.Context, ports.RegisterInput) error {
	return s.registerErr
}

func (s *stubSessionService) Logout(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutCalls++
	s.current = domain.Session{}
}

func (s *stubSessionService) Invalidate(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.Session{}
}

func (s *stubSessionService) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *stubSessionService) OnTransition(func(bool)) {}

type stubCartService struct {
	snapshot     domain.CartSnapshot
	addErr       error
	updateErr    error
	removeErr    error
	clearErr     error
	refreshCalls int
	addCalls     int
	updateCalls  int
	removeCalls  int
	clearCalls   int
}

func (s *stubCartService) Refresh(context.Context) { s.refreshCalls++ }

func (s *stubCartService) Add(_ context.Context, _ string, _ int) error {
	s.addCalls++
	return s.addErr
}

func (s *stubCartService) UpdateQuantity(_ context.Context, _ string, _ int) error {
	s.updateCalls++
	return s.updateErr
}

func (s *stubCartService) Remove(context.Context, string) error {
	s.removeCalls++
	return s.removeErr
}

func (s *stubCartService) Clear(context.Context) error {
	s.clearCalls++
	return s.clearErr
}

func (s *stubCartService) Snapshot() domain.CartSnapshot { return s.snapshot }

func (s *stubCartService) PurchasableCount() int { return s.snapshot.PurchasableCount() }

// newTestRegistry builds a registry whose factory hands every visitor the
// same stub pair, mirroring how production wires a container per visitor.
func newTestRegistry(session *stubSessionService, cart *stubCartService) *visitor.Registry {
	factory := func(visitorID string) *visitor.Container {
		return &visitor.Container{
			ID:      visitorID,
			Session: session,
			Cart:    cart,
			Notices: notify.NewHub(4),
		}
	}
	return visitor.NewRegistry(factory, 0, zerolog.Nop())
}

// newTestContext builds an echo context carrying a visitor identity, the
// way the identity middleware leaves it.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("visitor_id", "visitor-1")
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}
