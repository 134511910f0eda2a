package middleware

import (
	"context"
	"net/http"

	"github.com/vision2030/site-server/internal/audit"
	"github.com/vision2030/site-server/internal/config"
	"github.com/vision2030/site-server/internal/model"
)

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the authenticated admin placed in the context by the
// session middleware, or nil outside a guarded route.
func GetUser(ctx context.Context) *model.AdminUser {
	if user, ok := ctx.Value(UserContextKey).(*model.AdminUser); ok {
		return user
	}
	return nil
}

// SessionValidator resolves a session cookie value to its user.
// Satisfied by service.AuthService.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (*model.AdminUser, bool)
}

// SessionMiddleware is the server-side route guard. Handler protects API
// routes with JSON 401s; PageGuard protects dashboard pages with redirects
// to /login, clearing a stale cookie on the way out.
type SessionMiddleware struct {
	validator SessionValidator
}

func NewSessionMiddleware(validator SessionValidator) *SessionMiddleware {
	return &SessionMiddleware{validator: validator}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(config.SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		user, valid := m.validator.ValidateSession(r.Context(), cookie.Value)
		if !valid {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventAuthFailure,
				Details: map[string]interface{}{"path": r.URL.Path},
			})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) PageGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(config.SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		user, valid := m.validator.ValidateSession(r.Context(), cookie.Value)
		if !valid {
			ClearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SetSessionCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
