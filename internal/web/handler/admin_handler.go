package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// AdminHandler serves the admin console: moderation, the user registry, and
// the support inbox.
type AdminHandler struct {
	moderation   ports.ModerationService
	messages     ports.MessageService
	users        ports.AdminUserAPI
	recs         ports.RecommendationService
	pollInterval time.Duration
	logger       zerolog.Logger
}

func NewAdminHandler(
	moderation ports.ModerationService,
	messages ports.MessageService,
	users ports.AdminUserAPI,
	recs ports.RecommendationService,
	pollInterval time.Duration,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		moderation:   moderation,
		messages:     messages,
		users:        users,
		recs:         recs,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Dashboard shows the console landing page with headline counts. Each count
// degrades independently when the backend misbehaves.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	data := map[string]any{"Session": middleware.CurrentSession(c)}

	if pubs, err := h.moderation.List(ctx, ports.ModerationFilter{}); err == nil {
		data["PublicationCount"] = len(pubs)
	}
	if pending, err := h.moderation.List(ctx, ports.ModerationFilter{UnverifiedOnly: true}); err == nil {
		data["PendingCount"] = len(pending)
	}
	if users, err := h.users.ListUsers(ctx); err == nil {
		data["UserCount"] = len(users)
	}
	if stats, err := h.recs.Stats(ctx); err == nil {
		data["Stats"] = stats
	}

	return c.Render(http.StatusOK, "admin_dashboard.html", data)
}

// Publications renders the moderation table, refined by the status select or
// the pending-only toggle.
func (h *AdminHandler) Publications(c echo.Context) error {
	filter := ports.ModerationFilter{
		UnverifiedOnly: c.QueryParam("pending") == "1",
		Status:         domain.PublicationStatus(c.QueryParam("status")),
	}
	pubs, err := h.moderation.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin_publications.html", map[string]any{
		"Session":      middleware.CurrentSession(c),
		"Publications": pubs,
		"Pending":      filter.UnverifiedOnly,
		"Status":       string(filter.Status),
	})
}

// Verify approves a listing on behalf of the acting admin.
func (h *AdminHandler) Verify(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.Verify(ctx, id, middleware.CurrentSession(c).UserID)
	})
}

// Unverify withdraws approval.
func (h *AdminHandler) Unverify(c echo.Context) error {
	return h.mutate(c, h.moderation.Unverify)
}

// DeletePublication removes a listing outright.
func (h *AdminHandler) DeletePublication(c echo.Context) error {
	return h.mutate(c, h.moderation.Delete)
}

// SetCatalog toggles catalog placement. Placing verifies first.
func (h *AdminHandler) SetCatalog(c echo.Context) error {
	placed := c.FormValue("placed") == "true"
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.SetCatalogPlacement(ctx, id, middleware.CurrentSession(c).UserID, placed)
	})
}

// SetPublicationsPage toggles publications-page placement.
func (h *AdminHandler) SetPublicationsPage(c echo.Context) error {
	placed := c.FormValue("placed") == "true"
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.SetPublicationsPlacement(ctx, id, middleware.CurrentSession(c).UserID, placed)
	})
}

// SetPrice edits the listing price.
func (h *AdminHandler) SetPrice(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.SetPrice(ctx, id, formFloat(c, "price"))
	})
}

// SetType edits the listing category.
func (h *AdminHandler) SetType(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.SetType(ctx, id, c.FormValue("type"))
	})
}

// SetTitle edits the listing title.
func (h *AdminHandler) SetTitle(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.SetTitle(ctx, id, c.FormValue("title"))
	})
}

// SetDescription edits the listing description.
func (h *AdminHandler) SetDescription(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.SetDescription(ctx, id, c.FormValue("description"))
	})
}

// SetStatus moves the listing to any valid workflow status.
func (h *AdminHandler) SetStatus(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, id int64) error {
		return h.moderation.SetStatus(ctx, id, domain.PublicationStatus(c.FormValue("status")))
	})
}

// mutate factors the shared shape of every moderation action: parse the id,
// run the mutation, bounce back to the table so it re-fetches.
func (h *AdminHandler) mutate(c echo.Context, fn func(context.Context, int64) error) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := fn(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, backTo(c, "/admin/publications"))
}

// Users renders the account registry.
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin_users.html", map[string]any{
		"Session": middleware.CurrentSession(c),
		"Users":   users,
	})
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// Inbox lists every user who has a thread with support.
func (h *AdminHandler) Inbox(c echo.Context) error {
	users, err := h.messages.UsersWithConversations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "admin_inbox.html", map[string]any{
		"Session": middleware.CurrentSession(c),
		"Users":   users,
	})
}

// Conversation shows one user's thread from the admin side.
func (h *AdminHandler) Conversation(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	msgs, err := h.messages.AdminConversation(c.Request().Context(), sess.UserID, userID)
	if err != nil {
		return err
	}

	name := ""
	if user, err := h.users.ByID(c.Request().Context(), userID); err == nil {
		name = user.DisplayName()
	}

	return c.Render(http.StatusOK, "admin_conversation.html", map[string]any{
		"Session":  sess,
		"UserID":   userID,
		"Username": name,
		"Messages": msgs,
	})
}

// Reply sends a message to the user as the logged-in admin.
func (h *AdminHandler) Reply(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)

	upload, closeFn, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	input := ports.SendMessageInput{
		SenderID:   sess.UserID,
		ReceiverID: userID,
		Content:    c.FormValue("content"),
		File:       upload,
		Location:   formLocation(c),
	}
	if _, err := h.messages.Send(c.Request().Context(), input); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, c.Request().URL.Path)
}

// ConversationStream pushes one user's thread over server-sent events for
// the inbox view.
func (h *AdminHandler) ConversationStream(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	return streamSSE(c, "inbox", h.pollInterval, h.logger, func(ctx context.Context) (any, error) {
		return h.messages.AdminConversation(ctx, sess.UserID, userID)
	})
}

// backTo returns a whitelisted redirect target from the form, else the
// fallback.
func backTo(c echo.Context, fallback string) string {
	if back := c.FormValue("back"); back == "/admin" || back == "/admin/publications" {
		return back
	}
	return fallback
}
