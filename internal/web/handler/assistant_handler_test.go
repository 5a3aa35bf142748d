package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

type stubAssistant struct {
	lastQuestion string
}

func (s *stubAssistant) Reply(_ context.Context, question string) string {
	s.lastQuestion = question
	return "Réponse de test"
}

func TestAssistantHandler_AskRendersExchange(t *testing.T) {
	assistant := &stubAssistant{}
	h := NewAssistantHandler(assistant)

	c, _, renderer := postForm(t, "/assistant", url.Values{"message": {"  mon four est en panne  "}})
	if err := h.Ask(c); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if renderer.name != "assistant.html" {
		t.Fatalf("rendered %q", renderer.name)
	}
	if assistant.lastQuestion != "mon four est en panne" {
		t.Fatalf("question not trimmed: %q", assistant.lastQuestion)
	}
	if renderer.data["Reply"] != "Réponse de test" || renderer.data["Question"] != "mon four est en panne" {
		t.Fatalf("exchange not rendered: %v", renderer.data)
	}
}

func TestAssistantHandler_AskAnswersJSONForScripts(t *testing.T) {
	h := NewAssistantHandler(&stubAssistant{})

	c, rec, _ := postForm(t, "/assistant", url.Values{"message": {"bonjour"}})
	c.Request().Header.Set("X-Requested-With", "XMLHttpRequest")
	if err := h.Ask(c); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Réponse de test") {
		t.Fatalf("unexpected JSON answer: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAssistantHandler_EmptyQuestionRedirects(t *testing.T) {
	h := NewAssistantHandler(&stubAssistant{})

	c, rec, _ := postForm(t, "/assistant", url.Values{"message": {"   "}})
	if err := h.Ask(c); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}
