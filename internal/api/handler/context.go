package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/diycomponents/storefront/internal/api/middleware"
	"github.com/diycomponents/storefront/internal/api/visitor"
)

// container resolves the calling visitor's state container. The visitor
// identity middleware guarantees a visitor ID is present.
func container(c echo.Context, visitors *visitor.Registry) *visitor.Container {
	return visitors.Resolve(c.Request().Context(), middleware.VisitorID(c))
}
