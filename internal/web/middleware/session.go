// Package middleware rebuilds the visitor's session from cookies and guards
// the authenticated and admin route groups.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/infrastructure/backend"
)

// Cookie names of the persisted session triple.
const (
	CookieToken    = "token"
	CookieUserID   = "userId"
	CookieUsername = "username"
)

const sessionKey = "session"

// Session rebuilds the domain session from the cookie triple on every
// request and attaches the bearer token to the request context so all
// backend calls made downstream are authenticated.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := cookieValue(c, CookieToken)
			if token == "" {
				return next(c)
			}

			userID, _ := strconv.ParseInt(cookieValue(c, CookieUserID), 10, 64)
			sess := sessions.Restore(token, userID, cookieValue(c, CookieUsername))
			if sess == nil {
				ClearSessionCookies(c)
				return next(c)
			}

			c.Set(sessionKey, sess)
			req := c.Request()
			c.SetRequest(req.WithContext(backend.WithToken(req.Context(), sess.Token)))
			return next(c)
		}
	}
}

// RequireAuth redirects anonymous visitors to the login page.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentSession(c).LoggedIn() {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// RequireAdmin guards the admin console. Logged-in non-admins get a 403
// instead of a redirect loop.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := CurrentSession(c)
		if !sess.LoggedIn() {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if !sess.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "accès réservé aux administrateurs")
		}
		return next(c)
	}
}

// CurrentSession returns the restored session, or nil for anonymous
// visitors.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionKey).(*domain.Session)
	return sess
}

// SetSessionCookies persists the triple after a successful login.
func SetSessionCookies(c echo.Context, sess *domain.Session) {
	setCookie(c, CookieToken, sess.Token)
	setCookie(c, CookieUserID, strconv.FormatInt(sess.UserID, 10))
	setCookie(c, CookieUsername, sess.Username)
}

// ClearSessionCookies removes the triple. Called on logout and whenever the
// backend answers 401.
func ClearSessionCookies(c echo.Context) {
	for _, name := range []string{CookieToken, CookieUserID, CookieUsername} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func setCookie(c echo.Context, name, value string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
