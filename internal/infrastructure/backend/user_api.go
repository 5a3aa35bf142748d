package backend

import (
	"context"
	"fmt"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// UsersAPI wraps the /api/utilis and /api/admin/users routes.
type UsersAPI struct {
	c *Client
}

// Users returns the users resource API.
func (c *Client) Users() *UsersAPI {
	return &UsersAPI{c: c}
}

// Signup creates a new account.
func (u *UsersAPI) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	var out domain.User
	resp, err := u.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&out).
		Post("/api/utilis")
	if cerr := u.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Profile fetches the profile subset for a user.
func (u *UsersAPI) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	var out domain.User
	resp, err := u.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/utilis/profile/%d", userID))
	if cerr := u.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// ByID fetches a single account.
func (u *UsersAPI) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	resp, err := u.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/utilis/%d", id))
	if cerr := u.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// ListUsers returns every account, admin only.
func (u *UsersAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	resp, err := u.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/admin/users")
	if cerr := u.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return out, nil
}

// DeleteUser removes an account, admin only.
func (u *UsersAPI) DeleteUser(ctx context.Context, id int64) error {
	resp, err := u.c.r.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/admin/users/%d", id))
	return u.c.check(resp, err)
}
