package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

type stubMessageAPI struct {
	adminID       int64
	adminIDErr    error
	history       []domain.Message
	conversation  []domain.Message
	convErr       error
	sendCalls     int
	withFileCalls int
	lastInput     ports.SendMessageInput
	markedRead    []int64
	deleted       []int64
	bulkDeleted   [][]int64
}

func (s *stubMessageAPI) AdminID(context.Context) (int64, error) {
	return s.adminID, s.adminIDErr
}

func (s *stubMessageAPI) ForUser(context.Context, int64) ([]domain.Message, error) {
	return s.history, nil
}

func (s *stubMessageAPI) Conversation(context.Context, int64, int64) ([]domain.Message, error) {
	return s.conversation, s.convErr
}

func (s *stubMessageAPI) AdminConversation(context.Context, int64) ([]domain.Message, error) {
	return s.conversation, s.convErr
}

func (s *stubMessageAPI) UsersWithConversations(context.Context) ([]domain.User, error) {
	return nil, nil
}

func (s *stubMessageAPI) UnreadCount(context.Context, int64) (int, error) {
	count := 0
	for _, m := range s.conversation {
		if !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *stubMessageAPI) MarkAllRead(_ context.Context, userID int64) error {
	s.markedRead = append(s.markedRead, userID)
	return nil
}

func (s *stubMessageAPI) Send(_ context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	s.sendCalls++
	s.lastInput = input
	return &domain.Message{ID: 100, Content: input.Content, SenderID: input.SenderID, ReceiverID: input.ReceiverID}, nil
}

func (s *stubMessageAPI) SendWithAttachment(_ context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	s.withFileCalls++
	s.lastInput = input
	fileName := ""
	if input.File != nil {
		fileName = input.File.Name
	}
	return &domain.Message{ID: 101, SenderID: input.SenderID, ReceiverID: input.ReceiverID, FileName: fileName}, nil
}

func (s *stubMessageAPI) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubMessageAPI) BulkDelete(_ context.Context, ids []int64) error {
	s.bulkDeleted = append(s.bulkDeleted, ids)
	return nil
}

func TestMessageService_ResolveAdminID(t *testing.T) {
	t.Run("endpoint answers", func(t *testing.T) {
		api := &stubMessageAPI{adminID: 9}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		id, err := svc.ResolveAdminID(context.Background(), &domain.Session{UserID: 4})
		if err != nil || id != 9 {
			t.Fatalf("got (%d, %v), want (9, nil)", id, err)
		}
	})

	t.Run("falls back to history", func(t *testing.T) {
		api := &stubMessageAPI{
			adminIDErr: domain.ErrNotFound,
			history: []domain.Message{
				{SenderID: 4, ReceiverID: 4},
				{SenderID: 7, ReceiverID: 4},
			},
		}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		id, err := svc.ResolveAdminID(context.Background(), &domain.Session{UserID: 4})
		if err != nil || id != 7 {
			t.Fatalf("got (%d, %v), want (7, nil)", id, err)
		}
	})

	t.Run("admin resolves to self", func(t *testing.T) {
		api := &stubMessageAPI{adminIDErr: domain.ErrNotFound}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		sess := &domain.Session{UserID: 2, Role: domain.RoleAdmin}
		id, err := svc.ResolveAdminID(context.Background(), sess)
		if err != nil || id != 2 {
			t.Fatalf("got (%d, %v), want (2, nil)", id, err)
		}
	})

	t.Run("regular user with no history", func(t *testing.T) {
		api := &stubMessageAPI{adminIDErr: domain.ErrNotFound}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		if _, err := svc.ResolveAdminID(context.Background(), &domain.Session{UserID: 4}); !errors.Is(err, domain.ErrNoAdminFound) {
			t.Fatalf("expected ErrNoAdminFound, got %v", err)
		}
	})
}

func TestMessageService_Conversation(t *testing.T) {
	t.Run("missing thread reads empty", func(t *testing.T) {
		api := &stubMessageAPI{convErr: domain.ErrNotFound}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		msgs, err := svc.Conversation(context.Background(), 4, 9)
		if err != nil {
			t.Fatalf("conversation: %v", err)
		}
		if msgs == nil || len(msgs) != 0 {
			t.Fatalf("expected empty slice, got %#v", msgs)
		}
	})

	t.Run("unread incoming triggers mark-read", func(t *testing.T) {
		api := &stubMessageAPI{conversation: []domain.Message{
			{ID: 1, SenderID: 4, ReceiverID: 9, IsRead: false}, // outgoing, ignored
			{ID: 2, SenderID: 9, ReceiverID: 4, IsRead: false},
		}}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		if _, err := svc.Conversation(context.Background(), 4, 9); err != nil {
			t.Fatalf("conversation: %v", err)
		}
		if len(api.markedRead) != 1 || api.markedRead[0] != 4 {
			t.Fatalf("mark-read calls = %v, want [4]", api.markedRead)
		}
	})

	t.Run("all read skips mark-read", func(t *testing.T) {
		api := &stubMessageAPI{conversation: []domain.Message{
			{ID: 1, SenderID: 9, ReceiverID: 4, IsRead: true},
		}}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		if _, err := svc.Conversation(context.Background(), 4, 9); err != nil {
			t.Fatalf("conversation: %v", err)
		}
		if len(api.markedRead) != 0 {
			t.Fatalf("unexpected mark-read calls %v", api.markedRead)
		}
	})
}

func TestMessageService_Send(t *testing.T) {
	t.Run("all-empty composite rejected before network", func(t *testing.T) {
		api := &stubMessageAPI{}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		_, err := svc.Send(context.Background(), ports.SendMessageInput{SenderID: 4, ReceiverID: 9, Content: "   "})
		if !errors.Is(err, domain.ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage, got %v", err)
		}
		if api.sendCalls != 0 || api.withFileCalls != 0 {
			t.Fatal("empty message must not reach the backend")
		}
	})

	t.Run("location alone suffices and routes multipart", func(t *testing.T) {
		api := &stubMessageAPI{}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		loc := &domain.Location{Latitude: 36.8, Longitude: 10.18}
		if _, err := svc.Send(context.Background(), ports.SendMessageInput{SenderID: 4, ReceiverID: 9, Location: loc}); err != nil {
			t.Fatalf("send: %v", err)
		}
		// The plain endpoint has no latitude/longitude fields; a send that
		// took it would drop the coordinates on the floor.
		if api.sendCalls != 0 || api.withFileCalls != 1 {
			t.Fatalf("expected multipart route, plain=%d multipart=%d", api.sendCalls, api.withFileCalls)
		}
		if api.lastInput.Location == nil || api.lastInput.Location.Latitude != 36.8 {
			t.Fatalf("location lost on the way out: %+v", api.lastInput.Location)
		}
	})

	t.Run("attachment routes multipart and trims content", func(t *testing.T) {
		api := &stubMessageAPI{}
		svc := NewMessageService(api, 1024, zerolog.Nop())
		input := ports.SendMessageInput{
			SenderID: 4, ReceiverID: 9, Content: " bonjour ",
			File: &domain.Upload{Name: "photo.jpg", Size: 10, Reader: strings.NewReader("0123456789")},
		}
		if _, err := svc.Send(context.Background(), input); err != nil {
			t.Fatalf("send: %v", err)
		}
		if api.withFileCalls != 1 {
			t.Fatalf("expected multipart route, calls=%d", api.withFileCalls)
		}
		if api.lastInput.Content != "bonjour" {
			t.Fatalf("content not trimmed: %q", api.lastInput.Content)
		}
	})

	t.Run("oversized attachment rejected", func(t *testing.T) {
		api := &stubMessageAPI{}
		svc := NewMessageService(api, 5, zerolog.Nop())
		input := ports.SendMessageInput{
			SenderID: 4, ReceiverID: 9,
			File: &domain.Upload{Name: "big.bin", Size: 6, Reader: strings.NewReader("123456")},
		}
		if _, err := svc.Send(context.Background(), input); !errors.Is(err, domain.ErrFileTooLarge) {
			t.Fatalf("expected ErrFileTooLarge, got %v", err)
		}
		if api.withFileCalls != 0 {
			t.Fatal("oversized attachment must not reach the backend")
		}
	})
}

func TestMessageService_Delete_ParticipantsOnly(t *testing.T) {
	api := &stubMessageAPI{}
	svc := NewMessageService(api, 1024, zerolog.Nop())

	msg := domain.Message{ID: 3, SenderID: 4, ReceiverID: 9}
	if err := svc.Delete(context.Background(), 11, msg); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if err := svc.Delete(context.Background(), 9, msg); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != 3 {
		t.Fatalf("deleted = %v, want [3]", api.deleted)
	}
}

func TestMessageService_BulkDelete(t *testing.T) {
	api := &stubMessageAPI{}
	svc := NewMessageService(api, 1024, zerolog.Nop())

	msgs := []domain.Message{
		{ID: 1, SenderID: 4, ReceiverID: 9},
		{ID: 2, SenderID: 9, ReceiverID: 4},
	}
	if err := svc.BulkDelete(context.Background(), 4, msgs); err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if len(api.bulkDeleted) != 1 || len(api.bulkDeleted[0]) != 2 {
		t.Fatalf("bulkDeleted = %v", api.bulkDeleted)
	}

	// One foreign message poisons the whole batch.
	msgs = append(msgs, domain.Message{ID: 3, SenderID: 7, ReceiverID: 9})
	if err := svc.BulkDelete(context.Background(), 4, msgs); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if len(api.bulkDeleted) != 1 {
		t.Fatal("poisoned batch must not reach the backend")
	}

	if err := svc.BulkDelete(context.Background(), 4, nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}
