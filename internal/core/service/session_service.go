package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/metrics"
)

// User-facing failure messages, one per branch of the error taxonomy.
const (
	msgServerUnreachable = "Impossible de contacter le serveur. Veuillez réessayer plus tard."
	msgTimeout           = "La requête a pris trop de temps. Vérifiez votre connexion."
	msgLoginFallback     = "Erreur de connexion"
	msgSignupFallback    = "Erreur lors de l'inscription"
	msgNoToken           = "Erreur : token non reçu du serveur"
)

// SessionService implements login, signup, logout, and session restoration
// from the persisted cookie triple.
type SessionService struct {
	auth         ports.AuthAPI
	users        ports.UserAPI
	validate     *validator.Validate
	loginTimeout time.Duration
	logger       zerolog.Logger
}

func NewSessionService(auth ports.AuthAPI, users ports.UserAPI, loginTimeout time.Duration, logger zerolog.Logger) *SessionService {
	if loginTimeout <= 0 {
		loginTimeout = 10 * time.Second
	}
	return &SessionService{
		auth:         auth,
		users:        users,
		validate:     validator.New(),
		loginTimeout: loginTimeout,
		logger:       logger,
	}
}

// Login normalizes the email, validates it before any network call, posts
// the credentials under the shorter login timeout, and classifies every
// failure into a message fit for inline rendering. It never returns a raw
// transport error.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if s.validate.Var(email, "required,email") != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_email").Inc()
		return nil, domain.ErrInvalidEmail
	}
	if password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return nil, errors.New("le mot de passe est requis")
	}

	ctx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return nil, classify(err, msgLoginFallback)
	}
	if result.Token == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return nil, errors.New(msgNoToken)
	}

	sess := &domain.Session{
		Token:    result.Token,
		UserID:   result.UserID,
		Username: result.Username,
		Email:    result.Email,
		Role:     result.Role,
	}
	fillFromClaims(sess)

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("user_id", sess.UserID).Str("role", sess.Role).Msg("user logged in")
	return sess, nil
}

// Signup registers a new account. Same classification contract as Login.
func (s *SessionService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	if err := s.validate.Struct(input); err != nil {
		return nil, humanize(err)
	}

	user, err := s.users.Signup(ctx, input)
	if err != nil {
		return nil, classify(err, msgSignupFallback)
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("account created")
	return user, nil
}

// Logout notifies the backend best-effort. The local session is cleared by
// the caller unconditionally, whatever the backend answered.
func (s *SessionService) Logout(ctx context.Context, sess *domain.Session) {
	if !sess.LoggedIn() || sess.UserID == 0 {
		return
	}
	if err := s.auth.Logout(ctx, sess.UserID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", sess.UserID).Msg("backend logout failed")
	}
}

// Restore rebuilds a session from the cookie triple. A token whose claims
// cannot be decoded yields nil: the visitor is treated as anonymous and the
// stale cookies get cleared on the next login.
func (s *SessionService) Restore(token string, userID int64, username string) *domain.Session {
	if token == "" {
		return nil
	}
	sess := &domain.Session{Token: token, UserID: userID, Username: username}
	if !fillFromClaims(sess) {
		return nil
	}
	return sess
}

// fillFromClaims completes the session with the email (subject) and role
// carried by the bearer token. The token is decoded without verification:
// the frontend never holds the signing secret, the backend is the one that
// validates it on every request.
func fillFromClaims(sess *domain.Session) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err != nil {
		return false
	}
	if sub, err := claims.GetSubject(); err == nil && sess.Email == "" {
		sess.Email = sub
	}
	if role, ok := claims["role"].(string); ok && sess.Role == "" {
		sess.Role = role
	}
	return true
}

func classify(err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrBackendTimeout):
		return errors.New(msgTimeout)
	case errors.Is(err, domain.ErrBackendUnreachable):
		return errors.New(msgServerUnreachable)
	}
	if ae, ok := domain.AsAPIError(err); ok && ae.Message != "" {
		return errors.New(ae.Message)
	}
	return errors.New(fallback)
}

var _ ports.SessionService = (*SessionService)(nil)

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrBackendTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrBackendUnreachable):
		return "unreachable"
	default:
		return "rejected"
	}
}
