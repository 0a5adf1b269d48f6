package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func runVisitorMiddleware(t *testing.T, cookie *http.Cookie) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	handler := VisitorIdentity(testSecret)(func(c echo.Context) error {
		got = VisitorID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware failed: %v", err)
	}
	return got, rec
}

func issuedCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	resp := rec.Result()
	defer resp.Body.Close()
	for _, ck := range resp.Cookies() {
		if ck.Name == "sf_visitor" {
			return ck
		}
	}
	t.Fatalf("no visitor cookie issued")
	return nil
}

func TestVisitorIdentity_MintsAndRoundTrips(t *testing.T) {
	first, rec := runVisitorMiddleware(t, nil)
	if first == "" {
		t.Fatalf("expected a minted visitor ID")
	}

	ck := issuedCookie(t, rec)
	if !ck.HttpOnly {
		t.Fatalf("visitor cookie must be HttpOnly")
	}

	second, rec2 := runVisitorMiddleware(t, &http.Cookie{Name: ck.Name, Value: ck.Value})
	if second != first {
		t.Fatalf("expected the same identity on the return visit, got %q vs %q", second, first)
	}
	resp := rec2.Result()
	defer resp.Body.Close()
	if len(resp.Cookies()) != 0 {
		t.Fatalf("a valid cookie must not be re-issued")
	}
}

func TestVisitorIdentity_TamperedCookieReplaced(t *testing.T) {
	first, rec := runVisitorMiddleware(t, nil)
	ck := issuedCookie(t, rec)

	tampered := &http.Cookie{Name: ck.Name, Value: ck.Value + "x"}
	second, rec2 := runVisitorMiddleware(t, tampered)
	if second == "" || second == first {
		t.Fatalf("expected a fresh identity for a tampered cookie")
	}
	issuedCookie(t, rec2)
}

func TestVisitorIdentity_ForeignSignatureRejected(t *testing.T) {
	token, err := signVisitorID("intruder", "other-secret")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, _ := runVisitorMiddleware(t, &http.Cookie{Name: "sf_visitor", Value: token})
	if got == "intruder" {
		t.Fatalf("identity signed with a foreign secret must not be accepted")
	}
}
