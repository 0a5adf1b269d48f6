package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diycomponents/storefront/internal/api/metrics"
	"github.com/diycomponents/storefront/internal/api/visitor"
	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

// SessionHandler exposes the session lifecycle over HTTP.
type SessionHandler struct {
	visitors *visitor.Registry
}

func NewSessionHandler(visitors *visitor.Registry) *SessionHandler {
	return &SessionHandler{visitors: visitors}
}

// Login authenticates the visitor against the remote auth endpoint.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cont := container(c, h.visitors)
	if err := cont.Session.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, sessionResponse{User: cont.Session.Current().User})
}

// Register creates a new account. No session is established: the account
// requires e-mail verification before first login.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Profile fields"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cont := container(c, h.visitors)
	input := ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	}
	if err := cont.Session.Register(c.Request().Context(), input); err != nil {
		return err
	}

	metrics.SessionEventsTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "registration successful, please verify your email"})
}

// Logout tears down the visitor's session. Purely local, always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	cont := container(c, h.visitors)
	cont.Session.Logout(c.Request().Context())

	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Profile returns the authenticated profile, or 401 when the visitor has
// no session.
//
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/profile [get]
func (h *SessionHandler) Profile(c echo.Context) error {
	cont := container(c, h.visitors)
	session := cont.Session.Current()
	if !session.Authenticated() {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, sessionResponse{User: session.User})
}
