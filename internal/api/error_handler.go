package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors and the remote error taxonomy to HTTP statuses.
//   - Surfaces upstream validation messages verbatim; everything without a
//     structured message gets a generic one.
//   - Logs unexpected errors internally without leaking details.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "please login first"
	case errors.Is(err, domain.ErrQuantityInvalid):
		return http.StatusUnprocessableEntity, "quantity must be at least 1; remove the item instead"
	case errors.Is(err, domain.ErrMutationInFlight):
		return http.StatusConflict, "another update for this item is still in progress"
	}

	// Remote API failures → taxonomy-driven mapping.
	var re *domain.RemoteError
	if errors.As(err, &re) {
		switch re.Kind {
		case domain.ErrKindUnauthorized:
			return http.StatusUnauthorized, "Session expired. Please login again."
		case domain.ErrKindForbidden:
			return http.StatusForbidden, "Access denied"
		case domain.ErrKindNotFound:
			return http.StatusNotFound, "Resource not found"
		case domain.ErrKindServer:
			return http.StatusBadGateway, "Server error. Please try again later."
		case domain.ErrKindNetwork:
			return http.StatusGatewayTimeout, "An error occurred. Please try again."
		case domain.ErrKindValidation:
			status := re.Status
			if status < 400 || status > 499 {
				status = http.StatusBadRequest
			}
			return status, domain.UserMessage(re, "An error occurred")
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
