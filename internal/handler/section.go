package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vision2030/site-server/internal/audit"
	apperrors "github.com/vision2030/site-server/internal/errors"
	"github.com/vision2030/site-server/internal/model"
	"github.com/vision2030/site-server/internal/service"
)

type SectionHandler struct {
	contentService    *service.ContentService
	sessionMiddleware func(http.Handler) http.Handler
}

func NewSectionHandler(contentService *service.ContentService, sessionMiddleware func(http.Handler) http.Handler) *SectionHandler {
	return &SectionHandler{
		contentService:    contentService,
		sessionMiddleware: sessionMiddleware,
	}
}

func (h *SectionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Reads are public; the site renders sections without authentication.
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(h.sessionMiddleware)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

func (h *SectionHandler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.contentService.GetAllSections(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list sections")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (h *SectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}

	section, err := h.contentService.GetSectionByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (h *SectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.Title == "" {
		writeError(w, apperrors.MissingRequired("title"))
		return
	}

	section, err := h.contentService.CreateSection(r.Context(), model.CreateSectionParams{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create section")
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventSectionCreate,
		UserID:  userID(r),
		Details: map[string]interface{}{"section_id": section.ID},
	})
	writeJSON(w, http.StatusCreated, section)
}

func (h *SectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	section, err := h.contentService.UpdateSection(r.Context(), id, model.UpdateSectionParams{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if apperrors.GetCode(err) != apperrors.ErrCodeNotFound {
			log.Error().Err(err).Msg("failed to update section")
		}
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventSectionUpdate,
		UserID:  userID(r),
		Details: map[string]interface{}{"section_id": section.ID},
	})
	writeJSON(w, http.StatusOK, section)
}

func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}

	if err := h.contentService.DeleteSection(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete section")
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventSectionDelete,
		UserID:  userID(r),
		Details: map[string]interface{}{"section_id": id},
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func sectionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.ValidationError("Section ID must be an integer"))
		return 0, false
	}
	return id, true
}
