package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// MessageService owns the two-party thread between a user and the support
// admin, plus the admin-side inbox.
type MessageService struct {
	messages       ports.MessageAPI
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewMessageService(messages ports.MessageAPI, maxUploadBytes int64, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, maxUploadBytes: maxUploadBytes, logger: logger}
}

// ResolveAdminID finds the support admin's identity. The dedicated endpoint
// is tried first; when it fails, the user's message history is scanned for
// the other participant. An admin talking to themselves resolves to their own
// id so the inbox still renders.
func (s *MessageService) ResolveAdminID(ctx context.Context, sess *domain.Session) (int64, error) {
	if id, err := s.messages.AdminID(ctx); err == nil && id != 0 {
		return id, nil
	}

	if sess == nil || sess.UserID == 0 {
		return 0, domain.ErrNoAdminFound
	}

	history, err := s.messages.ForUser(ctx, sess.UserID)
	if err == nil {
		for _, msg := range history {
			if msg.SenderID != sess.UserID {
				return msg.SenderID, nil
			}
			if msg.ReceiverID != sess.UserID {
				return msg.ReceiverID, nil
			}
		}
	}

	if sess.IsAdmin() {
		return sess.UserID, nil
	}
	return 0, domain.ErrNoAdminFound
}

// Conversation returns the user↔admin thread, oldest first. A thread that
// does not exist yet reads as empty, and any unread incoming messages are
// marked read best-effort.
func (s *MessageService) Conversation(ctx context.Context, userID, adminID int64) ([]domain.Message, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	msgs, err := s.messages.Conversation(ctx, userID, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Message{}, nil
		}
		return nil, err
	}
	s.markIncomingRead(ctx, userID, msgs)
	return msgs, nil
}

// AdminConversation is the admin's view of one user's thread.
func (s *MessageService) AdminConversation(ctx context.Context, adminID, userID int64) ([]domain.Message, error) {
	if adminID == 0 {
		return nil, domain.ErrMissingUser
	}
	msgs, err := s.messages.AdminConversation(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Message{}, nil
		}
		return nil, err
	}
	s.markIncomingRead(ctx, adminID, msgs)
	return msgs, nil
}

func (s *MessageService) markIncomingRead(ctx context.Context, readerID int64, msgs []domain.Message) {
	for _, msg := range msgs {
		if msg.ReceiverID == readerID && !msg.IsRead {
			if err := s.messages.MarkAllRead(ctx, readerID); err != nil {
				s.logger.Warn().Err(err).Int64("user_id", readerID).Msg("mark-read failed")
			}
			return
		}
	}
}

func (s *MessageService) UsersWithConversations(ctx context.Context) ([]domain.User, error) {
	return s.messages.UsersWithConversations(ctx)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if userID == 0 {
		return 0, domain.ErrMissingUser
	}
	return s.messages.UnreadCount(ctx, userID)
}

// Send delivers a composite message. Text, attachment, and location are all
// optional but at least one must survive trimming; an all-empty message never
// reaches the network.
func (s *MessageService) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	if input.SenderID == 0 || input.ReceiverID == 0 {
		return nil, domain.ErrMissingUser
	}
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" && input.File == nil && input.Location == nil {
		return nil, domain.ErrEmptyMessage
	}
	if input.File != nil && input.File.Size > s.maxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}

	// The plain endpoint only carries text. Anything with a file or a
	// location must travel as the multipart form.
	var (
		msg *domain.Message
		err error
	)
	if input.File != nil || input.Location != nil {
		msg, err = s.messages.SendWithAttachment(ctx, input)
	} else {
		msg, err = s.messages.Send(ctx, input)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("message_id", msg.ID).Int64("sender_id", input.SenderID).Msg("message sent")
	return msg, nil
}

// Delete removes one message. Only a participant of the message may delete
// it.
func (s *MessageService) Delete(ctx context.Context, requesterID int64, msg domain.Message) error {
	if !msg.Involves(requesterID) {
		return domain.ErrNotParticipant
	}
	return s.messages.Delete(ctx, msg.ID)
}

// BulkDelete removes a batch in one call. The whole batch is refused if any
// message does not involve the requester.
func (s *MessageService) BulkDelete(ctx context.Context, requesterID int64, msgs []domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(msgs))
	for _, msg := range msgs {
		if !msg.Involves(requesterID) {
			return domain.ErrNotParticipant
		}
		ids = append(ids, msg.ID)
	}
	return s.messages.BulkDelete(ctx, ids)
}

var _ ports.MessageService = (*MessageService)(nil)
