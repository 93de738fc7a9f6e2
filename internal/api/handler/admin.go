package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/middleware"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/response"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/security"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// dashboardTimezone is the timezone admin pages render timestamps in
const dashboardTimezone = "Asia/Kolkata"

// AdminHandler serves the admin console: login, feedback dashboard and
// chat review.
type AdminHandler struct {
	creds      security.CredentialProvider
	sessions   *security.SessionStore
	feedback   *service.FeedbackService
	chat       *service.ChatService
	tmpl       *template.Template
	sessionTTL time.Duration
	loc        *time.Location
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	creds security.CredentialProvider,
	sessions *security.SessionStore,
	feedback *service.FeedbackService,
	chat *service.ChatService,
	tmpl *template.Template,
	sessionTTL time.Duration,
) *AdminHandler {
	loc, err := time.LoadLocation(dashboardTimezone)
	if err != nil {
		log.Warn().Err(err).Msg("Dashboard timezone unavailable, falling back to UTC")
		loc = time.UTC
	}
	return &AdminHandler{
		creds:      creds,
		sessions:   sessions,
		feedback:   feedback,
		chat:       chat,
		tmpl:       tmpl,
		sessionTTL: sessionTTL,
		loc:        loc,
	}
}

// LoginPage renders the admin login form with optional status messages
func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Error   string
		Success string
	}{}

	switch r.URL.Query().Get("error") {
	case "invalid":
		data.Error = "Invalid username or password. Please try again."
	case "session":
		data.Error = "Your session has expired. Please log in again."
	}
	if r.URL.Query().Get("success") == "logout" {
		data.Success = "You have been successfully logged out."
	}

	h.render(w, "admin_login.html", data)
}

// Login checks form credentials and issues the admin cookie set
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/login?error=invalid", http.StatusFound)
		return
	}

	username := strings.ToLower(strings.TrimSpace(r.PostFormValue("username")))
	password := r.PostFormValue("password")

	user, ok := h.creds.Verify(username, password)
	if !ok {
		http.Redirect(w, r, "/admin/login?error=invalid", http.StatusFound)
		return
	}

	token := h.sessions.Issue(user.Username, user.Role)
	maxAge := int(h.sessionTTL.Seconds())

	h.setCookie(w, middleware.CookieAuth, "true", maxAge)
	h.setCookie(w, middleware.CookieUser, user.Username, maxAge)
	h.setCookie(w, middleware.CookieRole, user.Role, maxAge)
	h.setCookie(w, middleware.CookieToken, token, maxAge)

	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("Admin logged in")
	http.Redirect(w, r, "/feedback/admin", http.StatusFound)
}

// Logout revokes the session token and clears all four cookies
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := r.Cookie(middleware.CookieToken); err == nil {
		h.sessions.Revoke(token.Value)
	}

	h.setCookie(w, middleware.CookieAuth, "", -1)
	h.setCookie(w, middleware.CookieUser, "", -1)
	h.setCookie(w, middleware.CookieRole, "", -1)
	h.setCookie(w, middleware.CookieToken, "", -1)

	http.Redirect(w, r, "/admin/login?success=logout", http.StatusFound)
}

func (h *AdminHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type feedbackRow struct {
	ID        int64
	SessionID string
	Rating    string
	Comment   string
	CreatedAt string
}

// Dashboard renders the feedback review page
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedback.List(r.Context(), domain.FeedbackFilter{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to load feedback for dashboard")
		response.InternalError(w, "Error loading feedback data")
		return
	}

	stats, err := h.feedback.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load feedback stats for dashboard")
		response.InternalError(w, "Error loading feedback data")
		return
	}

	rows := make([]feedbackRow, 0, len(feedbacks))
	for _, f := range feedbacks {
		rating := "N/A"
		if f.Rating != nil {
			rating = fmt.Sprintf("%d", *f.Rating)
		}
		rows = append(rows, feedbackRow{
			ID:        f.ID,
			SessionID: f.SessionID,
			Rating:    rating,
			Comment:   f.Comment,
			CreatedAt: f.CreatedAt.In(h.loc).Format("2006-01-02 15:04:05"),
		})
	}

	h.render(w, "admin_feedback.html", struct {
		Feedback     []feedbackRow
		Total        int
		AvgRating    string
		CommentCount int
	}{
		Feedback:     rows,
		Total:        stats.TotalCount,
		AvgRating:    fmt.Sprintf("%.1f", stats.AverageRating),
		CommentCount: stats.CommentCount,
	})
}

type sessionRow struct {
	SessionID    string
	CreatedAt    string
	MessageCount int
}

// Sessions renders the chat review page listing all sessions
func (h *AdminHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chat.ListSessions(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load sessions for review")
		response.InternalError(w, "Error loading chat sessions")
		return
	}

	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, sessionRow{
			SessionID:    s.SessionID,
			CreatedAt:    s.CreatedAt.In(h.loc).Format("2006-01-02 15:04:05"),
			MessageCount: s.MessageCount,
		})
	}

	canDelete := false
	if role, err := r.Cookie(middleware.CookieRole); err == nil {
		canDelete = role.Value == domain.RoleSuperAdmin
	}

	h.render(w, "admin_sessions.html", struct {
		Sessions  []sessionRow
		CanDelete bool
	}{Sessions: rows, CanDelete: canDelete})
}

// DeleteSession removes a session from the admin console. Routed behind
// RequireRole(super_admin).
func (h *AdminHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chat.DeleteSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "Session not found")
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to delete session from console")
		response.InternalError(w, "Failed to delete session")
		return
	}

	http.Redirect(w, r, "/admin/sessions", http.StatusFound)
}

func (h *AdminHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Template render failed")
		response.InternalError(w, "Internal server error")
	}
}
