package api

import (
	"fmt"
	"net/http"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/handler"
	customMiddleware "github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/middleware"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/config"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/faq"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/metrics"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/notify"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/repository/sqlite"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/security"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/service"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires repositories, services and handlers onto the HTTP router
func NewRouter(cfg *config.Config, db *sqlite.DB) (http.Handler, error) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS: all origins, matching the source deployment
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize repositories
	sessionRepo := sqlite.NewSessionRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)
	feedbackRepo := sqlite.NewFeedbackRepository(db)

	// Initialize security components
	creds, err := security.NewStaticProvider(cfg.Admins)
	if err != nil {
		return nil, fmt.Errorf("failed to build credential provider: %w", err)
	}
	adminSessions := security.NewSessionStore(cfg.Auth.SessionTTL)

	// Initialize services
	matcher := faq.NewMatcher(cfg.FAQ.Path)
	chatService := service.NewChatService(sessionRepo, messageRepo, matcher)
	feedbackService := service.NewFeedbackService(feedbackRepo, notify.NewMailer(cfg.SMTP), cfg.Export.Dir)

	// Metrics
	m := metrics.New()

	// Admin templates
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin templates: %w", err)
	}

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService, m)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, m)
	adminHandler := handler.NewAdminHandler(creds, adminSessions, feedbackService, chatService, tmpl, cfg.Auth.SessionTTL)

	adminAuth := customMiddleware.NewAdminAuth(creds, adminSessions)

	// Liveness
	r.Get("/", handler.Root)
	r.Get("/health", handler.Health)

	// Chat API
	r.Route("/chat", func(r chi.Router) {
		r.Post("/", chatHandler.Chat)
		r.Get("/history/{sessionID}", chatHandler.History)
		r.Post("/session", chatHandler.NewSession)
		r.Delete("/clear/{sessionID}", chatHandler.Clear)
		r.Get("/sessions", chatHandler.Sessions)
		r.Delete("/session/{sessionID}", chatHandler.DeleteSession)

		r.Post("/feedback", feedbackHandler.Submit)
		r.Get("/feedback/view", feedbackHandler.View)
		r.Get("/feedback/export", feedbackHandler.Export)
	})

	// Feedback stats
	r.Get("/feedback/stats", feedbackHandler.Stats)

	// Admin console
	r.Get("/admin/login", adminHandler.LoginPage)
	r.Post("/admin/login", adminHandler.Login)
	r.Get("/admin/logout", adminHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(adminAuth.RequireAuth)
		r.Get("/feedback/admin", adminHandler.Dashboard)
		r.Get("/admin/sessions", adminHandler.Sessions)
	})

	r.Group(func(r chi.Router) {
		r.Use(adminAuth.RequireRole(domain.RoleSuperAdmin))
		r.Post("/admin/sessions/{sessionID}/delete", adminHandler.DeleteSession)
	})

	// Metrics
	if cfg.Metrics.Enabled {
		r.Method(http.MethodGet, cfg.Metrics.Path, m.Handler())
	}

	return r, nil
}
