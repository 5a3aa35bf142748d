// Package web assembles the echo application: renderer, middleware chain,
// error handling, and every route of the customer and admin surfaces.
package web

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/service"
	"github.com/fixer-market/fixer-web/internal/infrastructure/backend"
	"github.com/fixer-market/fixer-web/internal/infrastructure/config"
	"github.com/fixer-market/fixer-web/internal/web/handler"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
	"github.com/fixer-market/fixer-web/internal/web/render"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, client *backend.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New(cfg.Web.TemplateDir, cfg.Backend.URL)
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fixer_web"))

	// --- Services ---
	sessions := service.NewSessionService(client.Auth(), client.Users(), cfg.Backend.LoginTimeout, log)
	catalog := service.NewCatalogService(client.Publications(), cfg.Messages.MaxUploadBytes, log)
	moderation := service.NewModerationService(client.AdminPublications(), log)
	carts := service.NewCartService(client.Carts(), cfg.Web.CheckoutDelay, log)
	messages := service.NewMessageService(client.Messages(), cfg.Messages.MaxUploadBytes, log)
	recs := service.NewRecommendationService(client.Recommendations(), log)
	assistant := service.NewAssistantService(catalog, log)

	e.Use(middleware.Session(sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions)
	pageHandler := handler.NewPageHandler(client.Users(), catalog, recs, log)
	shopHandler := handler.NewShopHandler(catalog)
	pubHandler := handler.NewPublicationHandler(catalog)
	cartHandler := handler.NewCartHandler(carts)
	messageHandler := handler.NewMessageHandler(messages, cfg.Messages.PollInterval, log)
	adminHandler := handler.NewAdminHandler(moderation, messages, client.Users(), recs, cfg.Messages.PollInterval, log)
	assistantHandler := handler.NewAssistantHandler(assistant)
	healthHandler := handler.NewHealthHandler()

	// --- Public pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/contact", pageHandler.Contact)
	e.GET("/shop", shopHandler.Shop)
	e.GET("/shop/:id", shopHandler.Detail)
	e.GET("/publications", pubHandler.List)
	e.GET("/assistant", assistantHandler.Show)
	e.POST("/assistant", assistantHandler.Ask)

	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/signup", authHandler.SignupPage)
	e.POST("/signup", authHandler.Signup)
	e.POST("/logout", authHandler.Logout)

	// --- Authenticated pages ---
	auth := e.Group("", middleware.RequireAuth)
	auth.GET("/profile", pageHandler.Profile)
	auth.POST("/recommendations", pageHandler.SubmitRecommendation)
	auth.POST("/publications", pubHandler.Create)

	auth.GET("/cart", cartHandler.Show)
	auth.POST("/cart/items", cartHandler.AddItem)
	auth.POST("/cart/items/:id/quantity", cartHandler.UpdateQuantity)
	auth.POST("/cart/items/:id/delete", cartHandler.RemoveItem)
	auth.POST("/cart/clear", cartHandler.Clear)
	auth.GET("/checkout", cartHandler.CheckoutPage)
	auth.POST("/checkout", cartHandler.Checkout)

	auth.GET("/messages", messageHandler.Show)
	auth.POST("/messages", messageHandler.Send)
	auth.POST("/messages/:id/delete", messageHandler.Delete)
	auth.POST("/messages/bulk-delete", messageHandler.BulkDelete)
	auth.GET("/messages/stream", messageHandler.Stream)
	auth.GET("/notifications/stream", messageHandler.NotificationStream)

	// --- Admin console ---
	admin := e.Group("/admin", middleware.RequireAdmin)
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/publications", adminHandler.Publications)
	admin.POST("/publications/:id/verify", adminHandler.Verify)
	admin.POST("/publications/:id/unverify", adminHandler.Unverify)
	admin.POST("/publications/:id/delete", adminHandler.DeletePublication)
	admin.POST("/publications/:id/catalog", adminHandler.SetCatalog)
	admin.POST("/publications/:id/publications-page", adminHandler.SetPublicationsPage)
	admin.POST("/publications/:id/price", adminHandler.SetPrice)
	admin.POST("/publications/:id/type", adminHandler.SetType)
	admin.POST("/publications/:id/title", adminHandler.SetTitle)
	admin.POST("/publications/:id/description", adminHandler.SetDescription)
	admin.POST("/publications/:id/status", adminHandler.SetStatus)
	admin.GET("/users", adminHandler.Users)
	admin.POST("/users/:id/delete", adminHandler.DeleteUser)
	admin.GET("/messages", adminHandler.Inbox)
	admin.GET("/messages/:userId", adminHandler.Conversation)
	admin.POST("/messages/:userId", adminHandler.Reply)
	admin.GET("/messages/:userId/stream", adminHandler.ConversationStream)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.Static("/static", cfg.Web.StaticDir)

	return e, nil
}
