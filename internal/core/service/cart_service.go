package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/metrics"
)

// CartService owns the per-user cart. Every mutation re-fetches the cart from
// the backend instead of patching a local copy.
type CartService struct {
	carts         ports.CartAPI
	validate      *validator.Validate
	checkoutDelay time.Duration
	logger        zerolog.Logger
}

func NewCartService(carts ports.CartAPI, checkoutDelay time.Duration, logger zerolog.Logger) *CartService {
	return &CartService{
		carts:         carts,
		validate:      validator.New(),
		checkoutDelay: checkoutDelay,
		logger:        logger,
	}
}

func (s *CartService) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	return s.carts.Get(ctx, userID)
}

// AddItem puts a publication in the cart. A quantity below one is clamped to
// one.
func (s *CartService) AddItem(ctx context.Context, userID, publicationID int64, quantity int) (*domain.Cart, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	if quantity < 1 {
		quantity = 1
	}
	if err := s.carts.AddItem(ctx, userID, publicationID, quantity); err != nil {
		return nil, err
	}
	return s.carts.Get(ctx, userID)
}

// UpdateQuantity sets an item's quantity. A quantity of zero or less is a
// deliberate no-op: the item stays at its current quantity and removal goes
// through RemoveItem only.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	if quantity <= 0 {
		return s.carts.Get(ctx, userID)
	}
	if err := s.carts.UpdateItem(ctx, userID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.carts.Get(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	if err := s.carts.RemoveItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.carts.Get(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) (*domain.Cart, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return s.carts.Get(ctx, userID)
}

// Checkout simulates a payment. The card is validated for shape only, never
// charged and never sent anywhere; after the processing delay the cart is
// cleared.
func (s *CartService) Checkout(ctx context.Context, userID int64, card ports.CardDetails) error {
	if userID == 0 {
		return domain.ErrMissingUser
	}
	if err := s.validate.Struct(card); err != nil {
		return humanize(err)
	}

	select {
	case <-time.After(s.checkoutDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return err
	}
	metrics.CheckoutsTotal.Inc()
	s.logger.Info().Int64("user_id", userID).Msg("checkout completed")
	return nil
}

var _ ports.CartService = (*CartService)(nil)
