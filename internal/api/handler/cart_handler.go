package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diycomponents/storefront/internal/api/metrics"
	"github.com/diycomponents/storefront/internal/api/visitor"
	"github.com/diycomponents/storefront/internal/core/domain"
)

// CartHandler exposes the cart synchronizer over HTTP.
type CartHandler struct {
	visitors   *visitor.Registry
	gstPercent float64
}

func NewCartHandler(visitors *visitor.Registry, gstPercent float64) *CartHandler {
	return &CartHandler{visitors: visitors, gstPercent: gstPercent}
}

// Get refreshes and returns the cart with its priced summary. A failed
// refresh still answers with the previous snapshot: stale beats blank.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	cont := container(c, h.visitors)
	cont.Cart.Refresh(c.Request().Context())
	return c.JSON(http.StatusOK, newCartResponse(cont.Cart.Snapshot(), h.gstPercent))
}

// Add puts an item into the cart.
//
// @Summary      Add an item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Item and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cont := container(c, h.visitors)
	if err := cont.Cart.Add(c.Request().Context(), req.SKU, req.Quantity); err != nil {
		metrics.CartOpsTotal.WithLabelValues("add", opResult(err)).Inc()
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("add", "ok").Inc()
	return c.JSON(http.StatusOK, newCartResponse(cont.Cart.Snapshot(), h.gstPercent))
}

// UpdateQuantity changes a line's quantity. Zero is rejected here, before
// any network call: deleting is Remove's job, never an implicit side
// effect of a decrement.
//
// @Summary      Update line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        sku   path      string                 true  "Line SKU"
// @Param        body  body      updateQuantityRequest  true  "New quantity"
// @Success      200   {object}  cartResponse
// @Failure      422   {object}  errorResponse
// @Router       /cart/{sku} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Quantity < 1 {
		return domain.ErrQuantityInvalid
	}

	cont := container(c, h.visitors)
	if err := cont.Cart.UpdateQuantity(c.Request().Context(), c.Param("sku"), req.Quantity); err != nil {
		metrics.CartOpsTotal.WithLabelValues("update", opResult(err)).Inc()
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, newCartResponse(cont.Cart.Snapshot(), h.gstPercent))
}

// Remove deletes a line from the cart.
//
// @Summary      Remove an item
// @Tags         cart
// @Produce      json
// @Param        sku  path      string  true  "Line SKU"
// @Success      200  {object}  cartResponse
// @Router       /cart/{sku} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	cont := container(c, h.visitors)
	if err := cont.Cart.Remove(c.Request().Context(), c.Param("sku")); err != nil {
		metrics.CartOpsTotal.WithLabelValues("remove", opResult(err)).Inc()
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("remove", "ok").Inc()
	return c.JSON(http.StatusOK, newCartResponse(cont.Cart.Snapshot(), h.gstPercent))
}

// Clear empties the cart.
//
// @Summary      Clear the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	cont := container(c, h.visitors)
	if err := cont.Cart.Clear(c.Request().Context()); err != nil {
		metrics.CartOpsTotal.WithLabelValues("clear", opResult(err)).Inc()
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("clear", "ok").Inc()
	return c.JSON(http.StatusOK, newCartResponse(cont.Cart.Snapshot(), h.gstPercent))
}

// opResult distinguishes mutations rejected before any network call from
// ones that reached the remote API and failed.
func opResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrQuantityInvalid),
		errors.Is(err, domain.ErrMutationInFlight):
		return "rejected"
	default:
		return "error"
	}
}
