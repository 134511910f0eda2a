package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vision2030/site-server/internal/audit"
	apperrors "github.com/vision2030/site-server/internal/errors"
	"github.com/vision2030/site-server/internal/middleware"
	"github.com/vision2030/site-server/internal/model"
	"github.com/vision2030/site-server/internal/service"
)

// Minimum password length. Enforced at the HTTP boundary; the service layer
// stores whatever it is handed.
const minPasswordLength = 6

type ProfileHandler struct {
	profileService    *service.ProfileService
	sessionMiddleware func(http.Handler) http.Handler
}

func NewProfileHandler(profileService *service.ProfileService, sessionMiddleware func(http.Handler) http.Handler) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		sessionMiddleware: sessionMiddleware,
	}
}

func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.sessionMiddleware)
	r.Get("/", h.Get)
	r.Patch("/", h.Update)
	r.Post("/password", h.UpdatePassword)

	return r
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	profile, err := h.profileService.GetProfile(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile.Public())
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req struct {
		Name      *string `json:"name"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	err := h.profileService.UpdateProfile(r.Context(), user.ID, model.UpdateProfileParams{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update profile")
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventProfileUpdate, UserID: user.ID})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ProfileHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, apperrors.MissingRequired("currentPassword and newPassword"))
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeError(w, apperrors.ValidationError("Password must be at least 6 characters"))
		return
	}

	if err := h.profileService.UpdatePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if apperrors.GetCode(err) != apperrors.ErrCodeWrongPassword {
			log.Error().Err(err).Msg("failed to update password")
		}
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventPasswordChange, UserID: user.ID})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
