package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// AssistantHandler serves the virtual support agent page.
type AssistantHandler struct {
	assistant ports.AssistantService
}

func NewAssistantHandler(assistant ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Show renders the widget with its opening message.
func (h *AssistantHandler) Show(c echo.Context) error {
	return c.Render(http.StatusOK, "assistant.html", map[string]any{
		"Session": middleware.CurrentSession(c),
		"Title":   "Assistant",
	})
}

// Ask answers one question. Script callers get JSON; a plain form post
// re-renders the page with the exchange.
func (h *AssistantHandler) Ask(c echo.Context) error {
	question := strings.TrimSpace(c.FormValue("message"))
	if question == "" {
		return c.Redirect(http.StatusSeeOther, "/assistant")
	}

	reply := h.assistant.Reply(c.Request().Context(), question)
	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return c.JSON(http.StatusOK, map[string]string{"reply": reply})
	}
	return c.Render(http.StatusOK, "assistant.html", map[string]any{
		"Session":  middleware.CurrentSession(c),
		"Title":    "Assistant",
		"Question": question,
		"Reply":    reply,
	})
}
