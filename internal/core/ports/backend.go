package ports

import (
	"context"

	"github.com/fixer-market/fixer-web/internal/core/domain"
)

// LoginResult is the backend's answer to a successful credential check.
type LoginResult struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// SignupInput carries a new account registration.
type SignupInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthAPI is the consumed /api/auth surface.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, userID int64) error
}

// UserAPI is the consumed /api/utilis surface.
type UserAPI interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

// AdminUserAPI is the consumed /api/admin/users surface.
type AdminUserAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ByID(ctx context.Context, id int64) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// CreatePublicationInput carries a new listing. Price must be strictly
// positive; the request is never sent when validation fails.
type CreatePublicationInput struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Type          string  `json:"type" validate:"required"`
	Price         float64 `json:"price" validate:"gt=0"`
	UtilisateurID int64   `json:"utilisateurId" validate:"required"`
}

// PublicationAPI is the consumed public /api/pub surface.
type PublicationAPI interface {
	// Catalog returns the verified, catalog-placed subset.
	Catalog(ctx context.Context) ([]domain.Publication, error)
	// PublicationsPage returns the subset placed on the publications page.
	PublicationsPage(ctx context.Context) ([]domain.Publication, error)
	Get(ctx context.Context, id int64) (*domain.Publication, error)
	ByUser(ctx context.Context, userID int64) ([]domain.Publication, error)
	Create(ctx context.Context, input CreatePublicationInput) (*domain.Publication, error)
	CreateWithFile(ctx context.Context, input CreatePublicationInput, file *domain.Upload) (*domain.Publication, error)
	Delete(ctx context.Context, id int64) error
}

// AdminPublicationAPI is the consumed /api/admin/publications surface. Every
// mutation is an independent, idempotent call; the caller re-fetches the list
// afterwards instead of patching local state.
type AdminPublicationAPI interface {
	All(ctx context.Context) ([]domain.Publication, error)
	Unverified(ctx context.Context) ([]domain.Publication, error)
	ByStatus(ctx context.Context, status domain.PublicationStatus) ([]domain.Publication, error)
	Verify(ctx context.Context, id, adminID int64) (*domain.Publication, error)
	Unverify(ctx context.Context, id int64) (*domain.Publication, error)
	Delete(ctx context.Context, id int64) error
	SetCatalog(ctx context.Context, id int64, placed bool) (*domain.Publication, error)
	SetPublicationsPage(ctx context.Context, id int64, placed bool) (*domain.Publication, error)
	SetPrice(ctx context.Context, id int64, price float64) (*domain.Publication, error)
	SetType(ctx context.Context, id int64, pubType string) (*domain.Publication, error)
	SetTitle(ctx context.Context, id int64, title string) (*domain.Publication, error)
	SetDescription(ctx context.Context, id int64, description string) (*domain.Publication, error)
	SetStatus(ctx context.Context, id int64, status domain.PublicationStatus) (*domain.Publication, error)
}

// CartAPI is the consumed /api/cart/user/{userId} surface.
type CartAPI interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, publicationID int64, quantity int) error
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

// SendMessageInput is a composite message payload: text, file, and location
// are all optional, but at least one must be present.
type SendMessageInput struct {
	SenderID   int64
	ReceiverID int64
	Content    string
	File       *domain.Upload
	Location   *domain.Location
}

// MessageAPI is the consumed /api/messages surface.
type MessageAPI interface {
	AdminID(ctx context.Context) (int64, error)
	ForUser(ctx context.Context, userID int64) ([]domain.Message, error)
	Conversation(ctx context.Context, userID, adminID int64) ([]domain.Message, error)
	AdminConversation(ctx context.Context, userID int64) ([]domain.Message, error)
	UsersWithConversations(ctx context.Context) ([]domain.User, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAllRead(ctx context.Context, userID int64) error
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	SendWithAttachment(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) error
}

// RecommendationAPI is the consumed /api/recommendations surface.
type RecommendationAPI interface {
	ForUser(ctx context.Context, userID int64) (*domain.Recommendation, error)
	Submit(ctx context.Context, userID int64, rating int) (*domain.Recommendation, error)
	Stats(ctx context.Context) (*domain.RecommendationStats, error)
}
