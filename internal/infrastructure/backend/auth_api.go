package backend

import (
	"context"
	"fmt"

	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// AuthAPI wraps the /api/auth routes.
type AuthAPI struct {
	c *Client
}

// Auth returns the auth resource API.
func (c *Client) Auth() *AuthAPI {
	return &AuthAPI{c: c}
}

// Login posts credentials and returns the issued token plus the identity
// fields the backend echoes back.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var out ports.LoginResult
	resp, err := a.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/api/auth/login")
	if cerr := a.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Logout notifies the backend that the user went offline. Best-effort on the
// caller's side; errors are returned for logging only.
func (a *AuthAPI) Logout(ctx context.Context, userID int64) error {
	resp, err := a.c.r.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/auth/logout/%d", userID))
	return a.c.check(resp, err)
}
