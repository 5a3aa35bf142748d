package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// CartHandler serves the cart page and the simulated checkout.
type CartHandler struct {
	carts ports.CartService
}

func NewCartHandler(carts ports.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Show renders the cart with its client-computed total.
func (h *CartHandler) Show(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	cart, err := h.carts.Get(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return h.renderCart(c, cart, nil)
}

// AddItem puts a listing in the cart and returns to the page the visitor
// came from.
func (h *CartHandler) AddItem(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	pubID := formInt64(c, "publicationId")
	if pubID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "publication manquante")
	}
	qty := formInt(c, "quantity", 1)

	if _, err := h.carts.AddItem(c.Request().Context(), sess.UserID, pubID, qty); err != nil {
		return err
	}
	if back := c.FormValue("back"); back == "/shop" || back == "/publications" {
		return c.Redirect(http.StatusSeeOther, back+"?added=1")
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// UpdateQuantity sets an item's quantity. Zero and below leave the item
// untouched.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	cart, err := h.carts.UpdateQuantity(c.Request().Context(), sess.UserID, itemID, formInt(c, "quantity", 0))
	if err != nil {
		return err
	}
	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return c.JSON(http.StatusOK, map[string]any{
			"items": cart.Items,
			"total": cart.Total(),
		})
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveItem deletes one line from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.carts.RemoveItem(c.Request().Context(), sess.UserID, itemID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if _, err := h.carts.Clear(c.Request().Context(), sess.UserID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// CheckoutPage renders the payment form over the current cart.
func (h *CartHandler) CheckoutPage(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	cart, err := h.carts.Get(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	if cart.Empty() {
		return c.Redirect(http.StatusSeeOther, "/cart")
	}
	return c.Render(http.StatusOK, "checkout.html", map[string]any{
		"Session": sess,
		"Cart":    cart,
		"Total":   cart.Total(),
	})
}

// Checkout runs the simulated payment. The card is shape-checked only and
// never leaves the process; success clears the cart and renders the
// confirmation.
func (h *CartHandler) Checkout(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	card := ports.CardDetails{
		Number: c.FormValue("cardNumber"),
		Holder: c.FormValue("cardHolder"),
		Expiry: c.FormValue("expiry"),
		CVV:    c.FormValue("cvv"),
	}

	ctx := c.Request().Context()
	cart, err := h.carts.Get(ctx, sess.UserID)
	if err != nil {
		return err
	}
	total := cart.Total()

	if err := h.carts.Checkout(ctx, sess.UserID, card); err != nil {
		return c.Render(http.StatusOK, "checkout.html", map[string]any{
			"Session": sess,
			"Cart":    cart,
			"Total":   total,
			"Error":   err.Error(),
		})
	}
	return c.Render(http.StatusOK, "checkout_success.html", map[string]any{
		"Session": sess,
		"Total":   total,
	})
}

func (h *CartHandler) renderCart(c echo.Context, cart *domain.Cart, extra map[string]any) error {
	data := map[string]any{
		"Session": middleware.CurrentSession(c),
		"Cart":    cart,
		"Total":   cart.Total(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return c.Render(http.StatusOK, "cart.html", data)
}
