package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// cannedReplies pair a keyword of the visitor's question with a fixed
// answer. Order matters: the first matching keyword wins.
var cannedReplies = []struct {
	keyword string
	reply   string
}{
	{"bonjour", "Bonjour ! Comment puis-je vous aider avec votre appareil électroménager ?"},
	{"salut", "Salut ! Que puis-je faire pour vous aujourd'hui ?"},
	{"prix", "Nos prix varient selon le type de réparation. Pour un devis précis, pouvez-vous me donner plus de détails sur votre appareil ?"},
	{"devis", "Pour obtenir un devis gratuit, décrivez votre problème dans la messagerie et un membre de l'équipe vous répondra."},
	{"réparation", "Nous réparons tous types d'appareils électroménagers : lave-linge, lave-vaisselle, réfrigérateur, four, micro-ondes, etc. Quel appareil vous pose problème ?"},
	{"contact", "Vous pouvez écrire directement à notre équipe depuis la page Messages. Nous répondons du lundi au vendredi de 9h à 18h."},
	{"horaires", "Nous sommes ouverts du lundi au vendredi de 9h à 18h. Le samedi de 9h à 13h."},
	{"garantie", "Toutes nos réparations sont garanties. La durée de garantie dépend du type d'intervention."},
	{"merci", "De rien ! N'hésitez pas si vous avez d'autres questions."},
	{"au revoir", "Au revoir ! N'hésitez pas à revenir si vous avez besoin d'aide."},
}

// searchTriggers mark a question as a listing lookup rather than small talk.
var searchTriggers = []string{
	"publication", "catalogue", "recherche", "trouve", "cherche",
	"disponible", "service", "réparation", "réparateur",
	"qu'est-ce", "qu'est ce", "quelles", "quels",
}

// AssistantService is the virtual support agent. Everything it knows comes
// from the canned reply table and whatever the catalog returns at question
// time; no conversation state is kept server-side.
type AssistantService struct {
	catalog ports.CatalogService
	logger  zerolog.Logger
}

func NewAssistantService(catalog ports.CatalogService, logger zerolog.Logger) *AssistantService {
	return &AssistantService{catalog: catalog, logger: logger}
}

// Reply answers one question. Listing lookups are tried first, then the
// canned table, then the contextual fallbacks.
func (s *AssistantService) Reply(ctx context.Context, question string) string {
	q := strings.ToLower(strings.TrimSpace(question))

	if isListingLookup(q) {
		if results := searchListings(s.loadListings(ctx), q); len(results) > 0 {
			return formatListings(results)
		}
	}

	for _, c := range cannedReplies {
		if strings.Contains(q, c.keyword) {
			return c.reply
		}
	}

	if isListingLookup(q) {
		return "Je peux vous aider à rechercher dans nos publications. Pouvez-vous être plus précis ? Par exemple : « recherche réparation lave-linge » ou « publications disponibles »."
	}

	switch {
	case strings.Contains(q, "problème") || strings.Contains(q, "panne"):
		return "Je comprends que vous avez un problème. Pouvez-vous me donner plus de détails sur votre appareil et le symptôme que vous observez ? Je peux aussi rechercher dans nos publications pour trouver un réparateur spécialisé."
	case strings.Contains(q, "urgence") || strings.Contains(q, "urgent"):
		return "Pour les urgences, écrivez-nous directement dans la messagerie. Nous ferons de notre mieux pour intervenir rapidement."
	}

	return "Je comprends votre question. Je peux vous aider à rechercher dans nos publications, ou vous pouvez écrire directement à notre équipe depuis la page Messages."
}

// loadListings pulls both public listing sets. A failing fetch does not
// block the assistant, it just answers without listing data.
func (s *AssistantService) loadListings(ctx context.Context) []domain.Publication {
	var all []domain.Publication
	if pubs, err := s.catalog.Catalog(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("assistant: catalog fetch failed")
	} else {
		all = append(all, pubs...)
	}
	if pubs, err := s.catalog.PublicationsPage(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("assistant: publications fetch failed")
	} else {
		all = append(all, pubs...)
	}
	return all
}

func isListingLookup(q string) bool {
	for _, kw := range searchTriggers {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func searchListings(pubs []domain.Publication, q string) []domain.Publication {
	terms := searchTerms(q)
	if len(terms) == 0 {
		return nil
	}
	var results []domain.Publication
	for _, pub := range pubs {
		haystack := strings.ToLower(pub.Title + " " + pub.Description + " " + pub.Type)
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				results = append(results, pub)
				break
			}
		}
	}
	return results
}

// searchTerms keeps the words worth matching listings on. The trigger words
// themselves and very short words say nothing about the appliance.
func searchTerms(q string) []string {
	words := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-'
	})
	var terms []string
	for _, w := range words {
		if utf8.RuneCountInString(w) < 3 || isListingLookup(w) {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

func formatListings(pubs []domain.Publication) string {
	var b strings.Builder
	fmt.Fprintf(&b, "J'ai trouvé %d publication(s) :\n\n", len(pubs))

	shown := pubs
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, pub := range shown {
		fmt.Fprintf(&b, "%d. %s\n", i+1, pub.Title)
		pubType := pub.Type
		if pubType == "" {
			pubType = "Non spécifié"
		}
		fmt.Fprintf(&b, "   Type : %s\n", pubType)
		if pub.Price > 0 {
			fmt.Fprintf(&b, "   Prix : %.2f DT\n", pub.Price)
		}
		if pub.Description != "" {
			fmt.Fprintf(&b, "   Description : %s\n", truncate(pub.Description, 100))
		}
		b.WriteString("\n")
	}

	if len(pubs) > 5 {
		fmt.Fprintf(&b, "\nEt %d autre(s) publication(s). Consultez notre catalogue pour voir toutes les publications disponibles.", len(pubs)-5)
	}
	b.WriteString("\n\nVous pouvez visiter notre catalogue pour plus de détails et contacter les réparateurs.")
	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

var _ ports.AssistantService = (*AssistantService)(nil)
