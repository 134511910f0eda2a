package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/vision2030/site-server/internal/audit"
	"github.com/vision2030/site-server/internal/config"
	apperrors "github.com/vision2030/site-server/internal/errors"
	"github.com/vision2030/site-server/internal/middleware"
	"github.com/vision2030/site-server/internal/service"
)

type AuthHandler struct {
	authService  *service.AuthService
	isProduction bool
}

func NewAuthHandler(authService *service.AuthService, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		isProduction: isProduction,
	}
}

// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		// The dashboard matches on this exact string, even when email is
		// the field that is missing.
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password is required"})
		return
	}

	user, session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeInvalidCredentials {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginFailure, Details: map[string]interface{}{"email": req.Email}})
			writeError(w, err)
			return
		}
		log.Error().Err(err).Msg("login error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginSuccess, UserID: user.ID})

	middleware.SetSessionCookie(w, session.ID, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Login successful",
		"user":      user.Public(),
		"sessionId": session.ID,
	})
}

// DELETE /api/login
// Invalidates the session referenced by the cookie, when present. The cookie
// is cleared unconditionally, even when the session row outlives a store
// failure.
func (h *AuthHandler) LogoutCookie(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)

	cookie, err := r.Cookie(config.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			log.Error().Err(err).Msg("logout error")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(config.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}

	user, valid := h.authService.ValidateSession(r.Context(), cookie.Value)
	if !valid {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          user.Public(),
	})
}

// POST /api/logout
// Legacy body-based variant kept for old dashboard builds. It acknowledges
// the logout without deleting the session row; DELETE /api/login is the
// variant that actually invalidates.
func (h *AuthHandler) LegacyLogout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "SessionId missing"})
		return
	}

	log.Info().Str("sessionId", req.SessionID).Msg("legacy logout acknowledged")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
