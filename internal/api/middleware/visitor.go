package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	visitorCookie  = "sf_visitor"
	visitorCtxKey  = "visitor_id"
	visitorMaxAge  = 365 * 24 * time.Hour
	visitorIDClaim = "vid"
)

// VisitorIdentity resolves the signed visitor-identity cookie, minting a
// fresh identity when the cookie is absent or fails verification. The
// visitor ID scopes all per-visitor state (credentials, session, cart).
func VisitorIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, ok := verifyCookie(c, secret); ok {
				c.Set(visitorCtxKey, id)
				return next(c)
			}

			id := uuid.NewString()
			token, err := signVisitorID(id, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish visitor identity")
			}

			c.SetCookie(&http.Cookie{
				Name:     visitorCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(visitorMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(visitorCtxKey, id)
			return next(c)
		}
	}
}

// VisitorID returns the visitor ID injected by VisitorIdentity.
func VisitorID(c echo.Context) string {
	id, _ := c.Get(visitorCtxKey).(string)
	return id
}

func verifyCookie(c echo.Context, secret string) (string, bool) {
	cookie, err := c.Cookie(visitorCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	id, _ := claims[visitorIDClaim].(string)
	return id, id != ""
}

func signVisitorID(id, secret string) (string, error) {
	claims := jwt.MapClaims{
		visitorIDClaim: id,
		"exp":          time.Now().Add(visitorMaxAge).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
