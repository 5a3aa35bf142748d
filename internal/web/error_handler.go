package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// NewHTTPErrorHandler returns the central error handler for the web layer:
//   - domain.ErrUnauthorized tears the session down: cookies cleared, browser
//     redirected to /login. This is the one error no page renders inline.
//   - Known domain errors map to deterministic status codes.
//   - Unexpected errors are logged with their real cause and rendered as a
//     generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			middleware.ClearSessionCookies(c)
			if wantsJSON(c) {
				_ = c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrUnauthorized.Error()})
				return
			}
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		if wantsJSON(c) {
			_ = c.JSON(code, map[string]string{"error": msg})
			return
		}
		renderErr := c.Render(code, "error.html", map[string]any{
			"Session": middleware.CurrentSession(c),
			"Status":  code,
			"Message": msg,
		})
		if renderErr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrMissingUser):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrNotParticipant):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrBackendTimeout),
		errors.Is(err, domain.ErrBackendUnreachable):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest, err.Error()
	}

	if ae, ok := domain.AsAPIError(err); ok {
		return ae.Status, ae.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "erreur interne du serveur"
}

// wantsJSON distinguishes the fetch-driven endpoints from full page loads.
func wantsJSON(c echo.Context) bool {
	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return accept == echo.MIMEApplicationJSON
}
