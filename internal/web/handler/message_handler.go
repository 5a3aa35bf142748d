package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/poll"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// MessageHandler serves the user↔admin thread: the page, the send form, and
// the live streams that replace manual refreshing.
type MessageHandler struct {
	messages     ports.MessageService
	pollInterval time.Duration
	logger       zerolog.Logger
}

func NewMessageHandler(messages ports.MessageService, pollInterval time.Duration, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, pollInterval: pollInterval, logger: logger}
}

// Show renders the conversation with the support admin. Opening the page
// marks incoming messages read.
func (h *MessageHandler) Show(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	adminID, err := h.messages.ResolveAdminID(ctx, sess)
	if err != nil {
		return c.Render(http.StatusOK, "messages.html", map[string]any{
			"Session": sess,
			"Error":   err.Error(),
		})
	}

	msgs, err := h.messages.Conversation(ctx, sess.UserID, adminID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "messages.html", map[string]any{
		"Session":  sess,
		"AdminID":  adminID,
		"Messages": msgs,
	})
}

// Send posts a composite message: text, an optional attachment, an optional
// device location.
func (h *MessageHandler) Send(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	adminID := formInt64(c, "receiverId")
	if adminID == 0 {
		var err error
		adminID, err = h.messages.ResolveAdminID(c.Request().Context(), sess)
		if err != nil {
			return err
		}
	}

	upload, closeFn, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	input := ports.SendMessageInput{
		SenderID:   sess.UserID,
		ReceiverID: adminID,
		Content:    c.FormValue("content"),
		File:       upload,
		Location:   formLocation(c),
	}
	if _, err := h.messages.Send(c.Request().Context(), input); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/messages")
}

// Delete removes one of the visitor's messages. The message is looked up in
// the thread first so the participant check runs against real data.
func (h *MessageHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	msg, err := h.findInThread(c, id)
	if err != nil {
		return err
	}
	if err := h.messages.Delete(ctx, sess.UserID, *msg); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/messages")
}

// BulkDelete removes the checked messages in one backend call.
func (h *MessageHandler) BulkDelete(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "formulaire invalide")
	}

	thread, err := h.thread(c)
	if err != nil {
		return err
	}
	byID := make(map[int64]domain.Message, len(thread))
	for _, msg := range thread {
		byID[msg.ID] = msg
	}

	var msgs []domain.Message
	for _, raw := range values["ids"] {
		var id int64
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
			continue
		}
		if msg, ok := byID[id]; ok {
			msgs = append(msgs, msg)
		}
	}

	if err := h.messages.BulkDelete(ctx, sess.UserID, msgs); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/messages")
}

// Stream pushes the conversation over server-sent events. The poll loop
// lives exactly as long as the connection: closing the page cancels the
// request context and stops the backend polling with it.
func (h *MessageHandler) Stream(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	adminID, err := h.messages.ResolveAdminID(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	return streamSSE(c, "conversation", h.pollInterval, h.logger, func(ctx context.Context) (any, error) {
		return h.messages.Conversation(ctx, sess.UserID, adminID)
	})
}

// NotificationStream pushes the unread counter for the navbar badge.
func (h *MessageHandler) NotificationStream(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	return streamSSE(c, "notifications", h.pollInterval, h.logger, func(ctx context.Context) (any, error) {
		count, err := h.messages.UnreadCount(ctx, sess.UserID)
		if err != nil {
			return nil, err
		}
		return map[string]int{"unread": count}, nil
	})
}

// streamSSE drives a server-sent-events response from a poll loop bound to
// the request context.
func streamSSE(c echo.Context, stream string, interval time.Duration, logger zerolog.Logger, fetch func(context.Context) (any, error)) error {
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	runner := poll.NewRunner(stream, interval, logger)
	runner.Run(c.Request().Context(), func(ctx context.Context) error {
		payload, err := fetch(ctx)
		if err != nil {
			return err
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
			return err
		}
		resp.Flush()
		return nil
	})
	return nil
}

func (h *MessageHandler) thread(c echo.Context) ([]domain.Message, error) {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)
	adminID, err := h.messages.ResolveAdminID(ctx, sess)
	if err != nil {
		return nil, err
	}
	return h.messages.Conversation(ctx, sess.UserID, adminID)
}

func (h *MessageHandler) findInThread(c echo.Context, id int64) (*domain.Message, error) {
	thread, err := h.thread(c)
	if err != nil {
		return nil, err
	}
	for i := range thread {
		if thread[i].ID == id {
			return &thread[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// formLocation reads the optional latitude/longitude pair. Both must be
// present for a location to attach.
func formLocation(c echo.Context) *domain.Location {
	lat := c.FormValue("latitude")
	lng := c.FormValue("longitude")
	if lat == "" || lng == "" {
		return nil
	}
	return &domain.Location{
		Latitude:  formFloat(c, "latitude"),
		Longitude: formFloat(c, "longitude"),
	}
}
