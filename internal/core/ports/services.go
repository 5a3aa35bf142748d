package ports

import (
	"context"

	"github.com/fixer-market/fixer-web/internal/core/domain"
)

// SessionService owns login, signup, and logout, and is the single source of
// truth for "is a user logged in" and "is that user an administrator".
// Login and Signup never return raw transport errors: failures are classified
// into human-readable messages.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Logout(ctx context.Context, sess *domain.Session)
	// Restore rebuilds a session from the persisted cookie triple. A nil
	// return means the token is unusable and the visitor is anonymous.
	Restore(token string, userID int64, username string) *domain.Session
}

// CatalogFilter is the client-side refinement applied on top of whatever the
// backend returned. Recomputed reactively, never re-fetched.
type CatalogFilter struct {
	Query string // free-text substring match on title, case-insensitive
	Type  string // exact category match, empty = all
}

// CatalogService serves the public listing views and listing creation.
type CatalogService interface {
	Catalog(ctx context.Context) ([]domain.Publication, error)
	PublicationsPage(ctx context.Context) ([]domain.Publication, error)
	ByUser(ctx context.Context, userID int64) ([]domain.Publication, error)
	Get(ctx context.Context, id int64) (*domain.Publication, error)
	Create(ctx context.Context, input CreatePublicationInput, file *domain.Upload) (*domain.Publication, error)
}

// ModerationFilter selects which listing subset an admin is looking at.
// Status takes precedence over UnverifiedOnly when both are set.
type ModerationFilter struct {
	UnverifiedOnly bool
	Status         domain.PublicationStatus
}

// ModerationService is the admin console over listings.
type ModerationService interface {
	List(ctx context.Context, filter ModerationFilter) ([]domain.Publication, error)
	Verify(ctx context.Context, id, adminID int64) error
	Unverify(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	SetCatalogPlacement(ctx context.Context, id, adminID int64, placed bool) error
	SetPublicationsPlacement(ctx context.Context, id, adminID int64, placed bool) error
	SetPrice(ctx context.Context, id int64, price float64) error
	SetType(ctx context.Context, id int64, pubType string) error
	SetTitle(ctx context.Context, id int64, title string) error
	SetDescription(ctx context.Context, id int64, description string) error
	SetStatus(ctx context.Context, id int64, status domain.PublicationStatus) error
}

// CardDetails is the simulated payment form.
type CardDetails struct {
	Number string `validate:"required,len=16,numeric"`
	Holder string `validate:"required"`
	Expiry string `validate:"required,len=5"`
	CVV    string `validate:"required,len=3,numeric"`
}

// CartService owns the per-user cart. Every mutation re-fetches the cart.
type CartService interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, publicationID int64, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error)
	Clear(ctx context.Context, userID int64) (*domain.Cart, error)
	Checkout(ctx context.Context, userID int64, card CardDetails) error
}

// MessageService owns the two-party thread between a user and the support
// admin, plus the admin-side inbox.
type MessageService interface {
	ResolveAdminID(ctx context.Context, sess *domain.Session) (int64, error)
	Conversation(ctx context.Context, userID, adminID int64) ([]domain.Message, error)
	AdminConversation(ctx context.Context, adminID, userID int64) ([]domain.Message, error)
	UsersWithConversations(ctx context.Context) ([]domain.User, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	Delete(ctx context.Context, requesterID int64, msg domain.Message) error
	BulkDelete(ctx context.Context, requesterID int64, msgs []domain.Message) error
}

// RecommendationService owns the one-per-user satisfaction rating.
type RecommendationService interface {
	ForUser(ctx context.Context, userID int64) (*domain.Recommendation, error)
	Submit(ctx context.Context, userID int64, rating int) (*domain.Recommendation, error)
	Stats(ctx context.Context) (*domain.RecommendationStats, error)
}

// AssistantService answers visitor questions from canned support knowledge
// and the live listing data. Replies are plain text, never an error: a
// question the assistant cannot place gets the generic fallback.
type AssistantService interface {
	Reply(ctx context.Context, question string) string
}
