package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// MessagesAPI wraps the /api/messages routes.
type MessagesAPI struct {
	c *Client
}

// Messages returns the messaging resource API.
func (c *Client) Messages() *MessagesAPI {
	return &MessagesAPI{c: c}
}

// AdminID resolves the single support administrator's id.
func (m *MessagesAPI) AdminID(ctx context.Context) (int64, error) {
	var out int64
	resp, err := m.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/messages/admin-id")
	if cerr := m.c.check(resp, err); cerr != nil {
		return 0, cerr
	}
	return out, nil
}

// ForUser returns every message involving the user, any counterpart.
func (m *MessagesAPI) ForUser(ctx context.Context, userID int64) ([]domain.Message, error) {
	return m.list(ctx, fmt.Sprintf("/api/messages/user/%d", userID))
}

// Conversation returns the user↔admin thread.
func (m *MessagesAPI) Conversation(ctx context.Context, userID, adminID int64) ([]domain.Message, error) {
	return m.list(ctx, fmt.Sprintf("/api/messages/conversation/%d/%d", userID, adminID))
}

// AdminConversation returns the thread with one user, scoped by the admin
// identity the backend resolves from the bearer token.
func (m *MessagesAPI) AdminConversation(ctx context.Context, userID int64) ([]domain.Message, error) {
	return m.list(ctx, fmt.Sprintf("/api/messages/admin/conversation/%d", userID))
}

// UsersWithConversations lists users who have at least one message with the
// admin.
func (m *MessagesAPI) UsersWithConversations(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	resp, err := m.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/messages/admin/users")
	if cerr := m.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return out, nil
}

// UnreadCount returns how many received messages are still unread.
func (m *MessagesAPI) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var out int
	resp, err := m.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/messages/user/%d/unread-count", userID))
	if cerr := m.c.check(resp, err); cerr != nil {
		return 0, cerr
	}
	return out, nil
}

// MarkAllRead flags every received message of the user as read.
func (m *MessagesAPI) MarkAllRead(ctx context.Context, userID int64) error {
	resp, err := m.c.r.R().
		SetContext(ctx).
		Put(fmt.Sprintf("/api/messages/user/%d/read-all", userID))
	return m.c.check(resp, err)
}

// Send posts a plain text message.
func (m *MessagesAPI) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	var out domain.Message
	resp, err := m.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"content":    input.Content,
			"senderId":   input.SenderID,
			"receiverId": input.ReceiverID,
		}).
		SetResult(&out).
		Post("/api/messages")
	if cerr := m.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// SendWithAttachment posts the composite form: text, file, and geolocation
// travel in a single multipart request. The file part is optional, a
// location-only message uses the same route.
func (m *MessagesAPI) SendWithAttachment(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	var out domain.Message
	form := map[string]string{
		"content":    input.Content,
		"senderId":   strconv.FormatInt(input.SenderID, 10),
		"receiverId": strconv.FormatInt(input.ReceiverID, 10),
	}
	if input.Location != nil {
		form["latitude"] = strconv.FormatFloat(input.Location.Latitude, 'f', -1, 64)
		form["longitude"] = strconv.FormatFloat(input.Location.Longitude, 'f', -1, 64)
	}

	req := m.c.r.R().
		SetContext(ctx).
		SetMultipartFormData(form).
		SetResult(&out)
	if input.File != nil {
		req.SetFileReader("file", input.File.Name, input.File.Reader)
	}
	resp, err := req.Post("/api/messages/upload-file")
	if cerr := m.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Delete removes one message.
func (m *MessagesAPI) Delete(ctx context.Context, id int64) error {
	resp, err := m.c.r.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/messages/%d", id))
	return m.c.check(resp, err)
}

// BulkDelete removes several messages in one call.
func (m *MessagesAPI) BulkDelete(ctx context.Context, ids []int64) error {
	resp, err := m.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string][]int64{"ids": ids}).
		Delete("/api/messages/bulk")
	return m.c.check(resp, err)
}

func (m *MessagesAPI) list(ctx context.Context, path string) ([]domain.Message, error) {
	var out []domain.Message
	resp, err := m.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(path)
	if cerr := m.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return out, nil
}
