package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

type stubAssistantCatalog struct {
	catalog      []domain.Publication
	publications []domain.Publication
	err          error
}

func (s *stubAssistantCatalog) Catalog(context.Context) ([]domain.Publication, error) {
	return s.catalog, s.err
}

func (s *stubAssistantCatalog) PublicationsPage(context.Context) ([]domain.Publication, error) {
	return s.publications, s.err
}

func (s *stubAssistantCatalog) ByUser(context.Context, int64) ([]domain.Publication, error) {
	panic("not used")
}

func (s *stubAssistantCatalog) Get(context.Context, int64) (*domain.Publication, error) {
	panic("not used")
}

func (s *stubAssistantCatalog) Create(context.Context, ports.CreatePublicationInput, *domain.Upload) (*domain.Publication, error) {
	panic("not used")
}

func TestAssistantService_Reply(t *testing.T) {
	washer := domain.Publication{ID: 1, Title: "Dépannage lave-linge", Type: domain.TypeRepair, Price: 40, Description: "Intervention à domicile"}

	t.Run("listing lookup wins over the canned reply", func(t *testing.T) {
		svc := NewAssistantService(&stubAssistantCatalog{catalog: []domain.Publication{washer}}, zerolog.Nop())
		reply := svc.Reply(context.Background(), "recherche lave-linge")
		if !strings.Contains(reply, "J'ai trouvé 1 publication(s)") || !strings.Contains(reply, "Dépannage lave-linge") {
			t.Fatalf("expected listing answer, got %q", reply)
		}
		if !strings.Contains(reply, "Prix : 40.00 DT") {
			t.Fatalf("price missing from listing answer: %q", reply)
		}
	})

	t.Run("canned keyword answers", func(t *testing.T) {
		svc := NewAssistantService(&stubAssistantCatalog{}, zerolog.Nop())
		reply := svc.Reply(context.Background(), "Bonjour !")
		if !strings.Contains(reply, "Comment puis-je vous aider") {
			t.Fatalf("unexpected greeting reply: %q", reply)
		}
	})

	t.Run("fruitless lookup asks for precision", func(t *testing.T) {
		svc := NewAssistantService(&stubAssistantCatalog{catalog: []domain.Publication{washer}}, zerolog.Nop())
		reply := svc.Reply(context.Background(), "quelles offres pour un grille-pain")
		if !strings.Contains(reply, "plus précis") {
			t.Fatalf("expected precision prompt, got %q", reply)
		}
	})

	t.Run("catalog failure degrades to canned replies", func(t *testing.T) {
		svc := NewAssistantService(&stubAssistantCatalog{err: errors.New("backend down")}, zerolog.Nop())
		reply := svc.Reply(context.Background(), "réparation")
		if !strings.Contains(reply, "Nous réparons tous types d'appareils") {
			t.Fatalf("expected canned repair reply, got %q", reply)
		}
	})

	t.Run("breakdown questions get the diagnostic prompt", func(t *testing.T) {
		svc := NewAssistantService(&stubAssistantCatalog{}, zerolog.Nop())
		reply := svc.Reply(context.Background(), "mon four est en panne")
		if !strings.Contains(reply, "plus de détails sur votre appareil") {
			t.Fatalf("unexpected breakdown reply: %q", reply)
		}
	})

	t.Run("unknown questions get the generic fallback", func(t *testing.T) {
		svc := NewAssistantService(&stubAssistantCatalog{}, zerolog.Nop())
		reply := svc.Reply(context.Background(), "42")
		if !strings.Contains(reply, "Je comprends votre question") {
			t.Fatalf("unexpected fallback: %q", reply)
		}
	})

	t.Run("long result lists are capped at five", func(t *testing.T) {
		var pubs []domain.Publication
		for i := 0; i < 7; i++ {
			pubs = append(pubs, domain.Publication{ID: int64(i + 1), Title: fmt.Sprintf("Dépannage frigo %d", i+1)})
		}
		svc := NewAssistantService(&stubAssistantCatalog{catalog: pubs}, zerolog.Nop())
		reply := svc.Reply(context.Background(), "cherche frigo")
		if !strings.Contains(reply, "J'ai trouvé 7 publication(s)") {
			t.Fatalf("wrong count: %q", reply)
		}
		if strings.Contains(reply, "Dépannage frigo 6") {
			t.Fatalf("more than five listings shown: %q", reply)
		}
		if !strings.Contains(reply, "Et 2 autre(s) publication(s)") {
			t.Fatalf("overflow note missing: %q", reply)
		}
	})
}
