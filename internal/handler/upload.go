package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vision2030/site-server/internal/audit"
	"github.com/vision2030/site-server/internal/config"
	apperrors "github.com/vision2030/site-server/internal/errors"
	"github.com/vision2030/site-server/internal/storage"
)

const maxFilenameLength = 255

var allowedImageTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// UploadHandler hands out presigned URLs so the dashboard can upload
// section and avatar images straight to the bucket.
type UploadHandler struct {
	storage           storage.Service
	sessionMiddleware func(http.Handler) http.Handler
}

func NewUploadHandler(storage storage.Service, sessionMiddleware func(http.Handler) http.Handler) *UploadHandler {
	return &UploadHandler{
		storage:           storage,
		sessionMiddleware: sessionMiddleware,
	}
}

func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.sessionMiddleware)
	r.Post("/", h.Create)

	return r
}

func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, apperrors.StorageUnavailable())
		return
	}

	var req struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	if err := validateFilename(req.Filename); err != nil {
		writeError(w, apperrors.ValidationError(err.Error()))
		return
	}
	if !allowedImageTypes[req.ContentType] {
		writeError(w, apperrors.ValidationError(fmt.Sprintf("content type %q is not allowed", req.ContentType)))
		return
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(req.Filename)))

	uploadURL, err := h.storage.PresignUpload(r.Context(), key, req.ContentType, config.UploadURLTTL)
	if err != nil {
		log.Error().Err(err).Msg("failed to presign upload")
		writeError(w, apperrors.Internal("Failed to create upload URL"))
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventUploadIssued,
		UserID:  userID(r),
		Details: map[string]interface{}{"key": key},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"uploadUrl": uploadURL,
		"publicUrl": h.storage.PublicURL(key),
		"key":       key,
		"expiresIn": int(config.UploadURLTTL.Seconds()),
	})
}

func validateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if len(filename) > maxFilenameLength {
		return fmt.Errorf("filename too long (max %d characters)", maxFilenameLength)
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("filename contains invalid characters")
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("filename must have an extension")
	}
	return nil
}
