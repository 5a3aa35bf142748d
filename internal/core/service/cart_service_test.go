package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

type stubCartAPI struct {
	cart        domain.Cart
	updateCalls int
	clearCalls  int
	lastQty     int
}

func (s *stubCartAPI) Get(_ context.Context, userID int64) (*domain.Cart, error) {
	c := s.cart
	c.UtilisateurID = userID
	return &c, nil
}

func (s *stubCartAPI) AddItem(_ context.Context, _, publicationID int64, quantity int) error {
	s.lastQty = quantity
	s.cart.Items = append(s.cart.Items, domain.CartItem{
		ID:            int64(len(s.cart.Items) + 1),
		PublicationID: publicationID,
		Quantity:      quantity,
	})
	return nil
}

func (s *stubCartAPI) UpdateItem(_ context.Context, _, itemID int64, quantity int) error {
	s.updateCalls++
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			s.cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubCartAPI) RemoveItem(_ context.Context, _, itemID int64) error {
	for i, item := range s.cart.Items {
		if item.ID == itemID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubCartAPI) Clear(context.Context, int64) error {
	s.clearCalls++
	s.cart.Items = nil
	return nil
}

func validCard() ports.CardDetails {
	return ports.CardDetails{Number: "4111111111111111", Holder: "Sami Trabelsi", Expiry: "12/27", CVV: "123"}
}

func TestCartService_RequiresUser(t *testing.T) {
	svc := NewCartService(&stubCartAPI{}, 0, zerolog.Nop())

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, domain.ErrMissingUser) {
		t.Fatalf("expected ErrMissingUser, got %v", err)
	}
	if err := svc.Checkout(context.Background(), 0, validCard()); !errors.Is(err, domain.ErrMissingUser) {
		t.Fatalf("expected ErrMissingUser, got %v", err)
	}
}

func TestCartService_AddItem_ClampsQuantity(t *testing.T) {
	api := &stubCartAPI{}
	svc := NewCartService(api, 0, zerolog.Nop())

	cart, err := svc.AddItem(context.Background(), 1, 42, -3)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if api.lastQty != 1 {
		t.Fatalf("quantity not clamped: %d", api.lastQty)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("cart not re-fetched: %+v", cart)
	}
}

func TestCartService_UpdateQuantity_ZeroIsNoOp(t *testing.T) {
	api := &stubCartAPI{cart: domain.Cart{Items: []domain.CartItem{{ID: 1, Quantity: 2, PublicationPrice: 10}}}}
	svc := NewCartService(api, 0, zerolog.Nop())

	for _, qty := range []int{0, -1} {
		cart, err := svc.UpdateQuantity(context.Background(), 1, 1, qty)
		if err != nil {
			t.Fatalf("update qty=%d: %v", qty, err)
		}
		if cart.Items[0].Quantity != 2 {
			t.Fatalf("quantity changed on no-op: %+v", cart.Items[0])
		}
	}
	if api.updateCalls != 0 {
		t.Fatalf("no-op must not call the backend, got %d calls", api.updateCalls)
	}

	cart, err := svc.UpdateQuantity(context.Background(), 1, 1, 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if api.updateCalls != 1 || cart.Items[0].Quantity != 5 {
		t.Fatalf("positive update not applied: %+v", cart.Items[0])
	}
}

func TestCartService_TotalFoldsLines(t *testing.T) {
	cart := &domain.Cart{Items: []domain.CartItem{
		{PublicationPrice: 10, Quantity: 2},
		{PublicationPrice: 3.5, Quantity: 1},
		{PublicationPrice: 7, Quantity: 0}, // displays as one
	}}
	if got := cart.Total(); got != 30.5 {
		t.Fatalf("total = %v, want 30.5", got)
	}
}

func TestCartService_Checkout(t *testing.T) {
	api := &stubCartAPI{cart: domain.Cart{Items: []domain.CartItem{{ID: 1, Quantity: 1}}}}
	svc := NewCartService(api, 10*time.Millisecond, zerolog.Nop())

	bad := validCard()
	bad.Number = "4111"
	if err := svc.Checkout(context.Background(), 1, bad); err == nil {
		t.Fatal("short card number must be rejected")
	}
	if api.clearCalls != 0 {
		t.Fatal("failed checkout must not clear the cart")
	}

	if err := svc.Checkout(context.Background(), 1, validCard()); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if api.clearCalls != 1 || len(api.cart.Items) != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", api.cart)
	}
}

func TestCartService_Checkout_CancelledDuringDelay(t *testing.T) {
	api := &stubCartAPI{}
	svc := NewCartService(api, time.Minute, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Checkout(ctx, 1, validCard()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if api.clearCalls != 0 {
		t.Fatal("cancelled checkout must not clear the cart")
	}
}
