package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diycomponents/storefront/internal/core/ports"
)

// CatalogHandler exposes the public catalog surface. No visitor state is
// involved; responses come from the shared, cached catalog service.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Products lists the full catalog.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	products, err := h.catalog.Products(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Product returns a single catalog entry by SKU.
//
// @Summary      Product detail
// @Tags         catalog
// @Produce      json
// @Param        sku  path      string  true  "Product SKU"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /products/{sku} [get]
func (h *CatalogHandler) Product(c echo.Context) error {
	product, err := h.catalog.Product(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Search runs a catalog text search.
//
// @Summary      Search products
// @Tags         catalog
// @Produce      json
// @Param        q    query    string  true  "Search query"
// @Success      200  {array}  domain.Product
// @Router       /products/search [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	products, err := h.catalog.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ByCategory lists the products in a category.
//
// @Summary      Products by category
// @Tags         catalog
// @Produce      json
// @Param        slug  path     string  true  "Category slug"
// @Success      200   {array}  domain.Product
// @Router       /products/category/{slug} [get]
func (h *CatalogHandler) ByCategory(c echo.Context) error {
	products, err := h.catalog.ProductsByCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Categories lists all categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// FilteredCategories lists only categories with live products.
//
// @Summary      List filtered categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories/filtered [get]
func (h *CatalogHandler) FilteredCategories(c echo.Context) error {
	categories, err := h.catalog.FilteredCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}
