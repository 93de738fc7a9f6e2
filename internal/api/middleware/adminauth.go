package middleware

import (
	"net/http"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/api/response"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/security"
)

// Admin cookie names. The four cookies jointly represent a login.
const (
	CookieAuth  = "admin_auth"
	CookieUser  = "admin_user"
	CookieRole  = "admin_role"
	CookieToken = "session_token"
)

// AdminAuth guards admin routes using the cookie set issued at login
type AdminAuth struct {
	creds    security.CredentialProvider
	sessions *security.SessionStore
}

// NewAdminAuth creates the admin auth middleware
func NewAdminAuth(creds security.CredentialProvider, sessions *security.SessionStore) *AdminAuth {
	return &AdminAuth{creds: creds, sessions: sessions}
}

// authenticated checks the auth-flag cookie, that the username cookie
// names a known admin, and that the token cookie is a live server-side
// session for that admin.
func (a *AdminAuth) authenticated(r *http.Request) bool {
	if flag, err := r.Cookie(CookieAuth); err != nil || flag.Value != "true" {
		return false
	}

	user, err := r.Cookie(CookieUser)
	if err != nil {
		return false
	}
	if _, ok := a.creds.Lookup(user.Value); !ok {
		return false
	}

	token, err := r.Cookie(CookieToken)
	if err != nil {
		return false
	}
	return a.sessions.Validate(token.Value, user.Value)
}

// RequireAuth rejects requests without a valid admin login
func (a *AdminAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authenticated(r) {
			response.Unauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects authenticated requests whose role cookie does not
// match the required role exactly.
func (a *AdminAuth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.authenticated(r) {
				response.Unauthorized(w, "Authentication required")
				return
			}
			got, err := r.Cookie(CookieRole)
			if err != nil || got.Value != role {
				response.Forbidden(w, "Super admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
