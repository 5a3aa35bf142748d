package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// PageHandler serves the pages that are not tied to one resource: home,
// contact, and the profile.
type PageHandler struct {
	users   ports.UserAPI
	catalog ports.CatalogService
	recs    ports.RecommendationService
	logger  zerolog.Logger
}

func NewPageHandler(users ports.UserAPI, catalog ports.CatalogService, recs ports.RecommendationService, logger zerolog.Logger) *PageHandler {
	return &PageHandler{users: users, catalog: catalog, recs: recs, logger: logger}
}

// Home renders the landing page with the aggregate satisfaction rating. The
// stats are decorative: a backend failure degrades to a page without them.
func (h *PageHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	data := map[string]any{"Session": sess}

	if stats, err := h.recs.Stats(ctx); err == nil {
		data["Stats"] = stats
	} else {
		h.logger.Warn().Err(err).Msg("recommendation stats unavailable")
	}

	if sess.LoggedIn() {
		if rec, err := h.recs.ForUser(ctx, sess.UserID); err == nil && rec != nil {
			data["OwnRating"] = rec.Rating
		}
	}
	data["Submitted"] = c.QueryParam("rated") == "1"

	return c.Render(http.StatusOK, "home.html", data)
}

// SubmitRecommendation upserts the visitor's 0–10 rating and returns home.
func (h *PageHandler) SubmitRecommendation(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	rating, err := strconv.Atoi(c.FormValue("rating"))
	if err != nil {
		return domain.ErrInvalidRating
	}
	if _, err := h.recs.Submit(c.Request().Context(), sess.UserID, rating); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/?rated=1")
}

// Contact renders the static contact page.
func (h *PageHandler) Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", map[string]any{
		"Session": middleware.CurrentSession(c),
	})
}

// Profile shows the visitor's account and their own listings, whatever their
// moderation state.
func (h *PageHandler) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	user, err := h.users.Profile(ctx, sess.UserID)
	if err != nil {
		return err
	}
	pubs, err := h.catalog.ByUser(ctx, sess.UserID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "profile.html", map[string]any{
		"Session":      sess,
		"User":         user,
		"Publications": pubs,
	})
}
