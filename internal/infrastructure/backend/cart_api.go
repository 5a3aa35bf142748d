package backend

import (
	"context"
	"fmt"

	"github.com/fixer-market/fixer-web/internal/core/domain"
)

// CartsAPI wraps the /api/cart/user/{userId} routes.
type CartsAPI struct {
	c *Client
}

// Carts returns the cart resource API.
func (c *Client) Carts() *CartsAPI {
	return &CartsAPI{c: c}
}

// Get fetches the user's cart.
func (a *CartsAPI) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	var out domain.Cart
	resp, err := a.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/cart/user/%d", userID))
	if cerr := a.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// AddItem puts a publication into the cart.
func (a *CartsAPI) AddItem(ctx context.Context, userID, publicationID int64, quantity int) error {
	resp, err := a.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"publicationId": publicationID, "quantity": quantity}).
		Post(fmt.Sprintf("/api/cart/user/%d/items", userID))
	return a.c.check(resp, err)
}

// UpdateItem changes the quantity of one cart item.
func (a *CartsAPI) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error {
	resp, err := a.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]int{"quantity": quantity}).
		Put(fmt.Sprintf("/api/cart/user/%d/items/%d", userID, itemID))
	return a.c.check(resp, err)
}

// RemoveItem deletes one cart item.
func (a *CartsAPI) RemoveItem(ctx context.Context, userID, itemID int64) error {
	resp, err := a.c.r.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/cart/user/%d/items/%d", userID, itemID))
	return a.c.check(resp, err)
}

// Clear empties the cart.
func (a *CartsAPI) Clear(ctx context.Context, userID int64) error {
	resp, err := a.c.r.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/cart/user/%d/clear", userID))
	return a.c.check(resp, err)
}
