package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/api/handler"
	"github.com/diycomponents/storefront/internal/api/middleware"
	"github.com/diycomponents/storefront/internal/api/visitor"
	"github.com/diycomponents/storefront/internal/core/ports"
	"github.com/diycomponents/storefront/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(visitors *visitor.Registry, catalog ports.CatalogService, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	visitorIdentity := middleware.VisitorIdentity(cfg.VisitorSecret)

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(visitors)
	cartHandler := handler.NewCartHandler(visitors, cfg.GSTPercent)
	catalogHandler := handler.NewCatalogHandler(catalog)
	notificationHandler := handler.NewNotificationHandler(visitors)

	// --- Session routes (visitor-scoped) ---
	auth := e.Group("/auth", visitorIdentity)
	auth.POST("/login", sessionHandler.Login)
	auth.POST("/register", sessionHandler.Register)
	auth.POST("/logout", sessionHandler.Logout)
	auth.GET("/profile", sessionHandler.Profile)

	// --- Cart routes (visitor-scoped) ---
	cart := e.Group("/cart", visitorIdentity)
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.PUT("/:sku", cartHandler.UpdateQuantity)
	cart.DELETE("/:sku", cartHandler.Remove)
	cart.DELETE("", cartHandler.Clear)

	// --- Notifications (visitor-scoped) ---
	e.GET("/notifications/stream", notificationHandler.Stream, visitorIdentity)

	// --- Catalog routes (public, shared cache) ---
	e.GET("/products", catalogHandler.Products)
	e.GET("/products/search", catalogHandler.Search)
	e.GET("/products/category/:slug", catalogHandler.ByCategory)
	e.GET("/products/:sku", catalogHandler.Product)
	e.GET("/categories", catalogHandler.Categories)
	e.GET("/categories/filtered", catalogHandler.FilteredCategories)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb, cfg.API.BaseURL)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
