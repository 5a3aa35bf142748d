package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// LoginPage renders the login form. Already-logged-in visitors are sent home.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if middleware.CurrentSession(c).LoggedIn() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login.html", map[string]any{
		"Created": c.QueryParam("created") == "1",
	})
}

// Login authenticates the posted credentials. Failures re-render the form
// with the classified message inline; the email field keeps its value.
func (h *AuthHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	sess, err := h.sessions.Login(c.Request().Context(), email, password)
	if err != nil {
		return c.Render(http.StatusOK, "login.html", map[string]any{
			"Error": err.Error(),
			"Email": email,
		})
	}

	middleware.SetSessionCookies(c, sess)
	if sess.IsAdmin() {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// SignupPage renders the registration form.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	if middleware.CurrentSession(c).LoggedIn() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "signup.html", map[string]any{})
}

// Signup registers the account and sends the visitor to the login form.
func (h *AuthHandler) Signup(c echo.Context) error {
	input := ports.SignupInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	if _, err := h.sessions.Signup(c.Request().Context(), input); err != nil {
		return c.Render(http.StatusOK, "signup.html", map[string]any{
			"Error":    err.Error(),
			"Username": input.Username,
			"Email":    input.Email,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/login?created=1")
}

// Logout clears the cookie triple unconditionally; the backend notification
// is best-effort.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context(), middleware.CurrentSession(c))
	middleware.ClearSessionCookies(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
