package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

type fixedCreds struct {
	creds ports.Credentials
}

func (s fixedCreds) Load(context.Context) (ports.Credentials, error) { return s.creds, nil }
func (s fixedCreds) Save(context.Context, ports.Credentials) error   { return nil }
func (s fixedCreds) Clear(context.Context) error                     { return nil }

func newTestClient(t *testing.T, handler http.Handler, creds ports.CredentialStore) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.URL, srv.Client(), creds, zerolog.Nop())
}

func TestClient_AuthenticatedHeaders(t *testing.T) {
	var gotAuth, gotUtoken string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUtoken = r.Header.Get("utoken")
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "u1"}})
	})
	creds := fixedCreds{creds: ports.Credentials{Token: "tok123", Email: "alice@example.com"}}
	client := newTestClient(t, handler, creds)

	if _, err := NewAuthGateway(client).Profile(context.Background()); err != nil {
		t.Fatalf("profile failed: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	want := base64.StdEncoding.EncodeToString([]byte("alice@example.com"))
	if gotUtoken != want {
		t.Fatalf("expected utoken %q, got %q", want, gotUtoken)
	}
}

func TestClient_PublicCallsCarryNoCredential(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Product{})
	})
	client := newTestClient(t, handler, NoCredentials{})

	if _, err := NewCatalogGateway(client).Products(context.Background()); err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("public call must not carry a credential, got %q", gotAuth)
	}
}

func TestClient_StatusClassification(t *testing.T) {
	cases := []struct {
		status int
		kind   domain.RemoteErrorKind
	}{
		{http.StatusUnauthorized, domain.ErrKindUnauthorized},
		{http.StatusForbidden, domain.ErrKindForbidden},
		{http.StatusNotFound, domain.ErrKindNotFound},
		{http.StatusUnprocessableEntity, domain.ErrKindValidation},
		{http.StatusInternalServerError, domain.ErrKindServer},
		{http.StatusBadGateway, domain.ErrKindServer},
	}

	for _, tc := range cases {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"message":"upstream says no"}`))
		})
		client := newTestClient(t, handler, NoCredentials{})

		_, err := NewCatalogGateway(client).Products(context.Background())
		var re *domain.RemoteError
		if !errors.As(err, &re) {
			t.Fatalf("status %d: expected RemoteError, got %v", tc.status, err)
		}
		if re.Kind != tc.kind || re.Status != tc.status {
			t.Fatalf("status %d: got kind=%s status=%d", tc.status, re.Kind, re.Status)
		}
		if re.Message != "upstream says no" {
			t.Fatalf("status %d: expected envelope message, got %q", tc.status, re.Message)
		}
	}
}

func TestClient_TransportFailureIsNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClientWithHTTP(srv.URL, srv.Client(), NoCredentials{}, zerolog.Nop())
	srv.Close()

	_, err := NewCatalogGateway(client).Products(context.Background())
	if domain.KindOf(err) != domain.ErrKindNetwork {
		t.Fatalf("expected network kind for a transport failure, got %v", err)
	}
	if !domain.Transient(err) {
		t.Fatalf("network failures must classify as transient")
	}
}

func TestClient_MalformedBodyIsNetworkKind(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})
	client := newTestClient(t, handler, NoCredentials{})

	_, err := NewCatalogGateway(client).Products(context.Background())
	if domain.KindOf(err) != domain.ErrKindNetwork {
		t.Fatalf("expected network kind for a malformed body, got %v", err)
	}
}

func TestClient_UnauthorizedHookFiresOnAuthedCallsOnly(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})
	creds := fixedCreds{creds: ports.Credentials{Token: "stale", Email: "a@example.com"}}
	client := newTestClient(t, handler, creds)

	fired := 0
	client.OnUnauthorized(func(context.Context) { fired++ })

	if _, err := NewAuthGateway(client).Profile(context.Background()); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected the hook to fire once for an authed 401, got %d", fired)
	}

	// A 401 on a public endpoint (e.g. bad login) is a plain failure, not a
	// session invalidation.
	_, _, err := NewAuthGateway(client).Login(context.Background(), "a@example.com", "wrong")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if fired != 1 {
		t.Fatalf("public 401 must not fire the hook, got %d", fired)
	}
}

func TestAuthGateway_LoginWireFormat(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["e_mail_id"] != "alice@example.com" || body["password"] != "s3cret" {
			t.Fatalf("unexpected payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok123",
			"user":  map[string]any{"id": "u1", "e_mail_id": "alice@example.com", "isVerified": true},
		})
	})
	client := newTestClient(t, handler, NoCredentials{})

	token, user, err := NewAuthGateway(client).Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "tok123" || user.Email != "alice@example.com" || !user.Verified {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}
}

func TestAuthGateway_LoginMissingToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "u1"}})
	})
	client := newTestClient(t, handler, NoCredentials{})

	if _, _, err := NewAuthGateway(client).Login(context.Background(), "a@example.com", "p"); err == nil {
		t.Fatalf("expected error for a response without a token")
	}
}

func TestCartGateway_WireFormat(t *testing.T) {
	var (
		methods []string
		paths   []string
	)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.EscapedPath())
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"SKU":"RES-10K","quantity":2,"list_price":2.5,"isWishlist":false}]`))
		case r.Method == http.MethodPost:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["SKU"] != "RES-10K" {
				t.Fatalf("unexpected add payload: %v", body)
			}
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	creds := fixedCreds{creds: ports.Credentials{Token: "tok", Email: "a@example.com"}}
	gw := NewCartGateway(newTestClient(t, handler, creds))
	ctx := context.Background()

	if err := gw.Add(ctx, "RES-10K", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, err := gw.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(items) != 1 || items[0].SKU != "RES-10K" || items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := gw.UpdateQuantity(ctx, "RES 10K", 3); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := gw.Remove(ctx, "RES-10K"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := gw.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	wantMethods := []string{"POST", "GET", "PUT", "DELETE", "DELETE"}
	wantPaths := []string{"/cart", "/cart", "/cart/RES%2010K", "/cart/RES-10K", "/cart"}
	for i := range wantMethods {
		if methods[i] != wantMethods[i] || paths[i] != wantPaths[i] {
			t.Fatalf("call %d: got %s %s, want %s %s", i, methods[i], paths[i], wantMethods[i], wantPaths[i])
		}
	}
}
