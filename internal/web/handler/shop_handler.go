package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/core/service"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// ShopHandler serves the customer-facing catalog.
type ShopHandler struct {
	catalog ports.CatalogService
}

func NewShopHandler(catalog ports.CatalogService) *ShopHandler {
	return &ShopHandler{catalog: catalog}
}

// Shop renders the catalog refined by the search box and category select.
// The filter runs over the already-fetched list; changing it never triggers
// another backend call. The template distinguishes "nothing for sale" from
// "nothing matches your filter" via HasAny.
func (h *ShopHandler) Shop(c echo.Context) error {
	all, err := h.catalog.Catalog(c.Request().Context())
	if err != nil {
		return err
	}

	filter := ports.CatalogFilter{
		Query: c.QueryParam("q"),
		Type:  c.QueryParam("type"),
	}
	filtered := service.FilterPublications(all, filter)

	return c.Render(http.StatusOK, "shop.html", map[string]any{
		"Session":      middleware.CurrentSession(c),
		"Publications": filtered,
		"HasAny":       len(all) > 0,
		"Query":        filter.Query,
		"Type":         filter.Type,
	})
}

// Detail renders one listing.
func (h *ShopHandler) Detail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pub, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "publication_detail.html", map[string]any{
		"Session":     middleware.CurrentSession(c),
		"Publication": pub,
	})
}
