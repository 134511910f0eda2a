package service

import (
	"context"

	apperrors "github.com/vision2030/site-server/internal/errors"
	"github.com/vision2030/site-server/internal/model"
	"github.com/vision2030/site-server/internal/repository"
)

// SectionsCache is the cache-aside store for the public listing.
// Satisfied by redis.SectionsCache; nil disables caching.
type SectionsCache interface {
	GetAll(ctx context.Context) ([]model.Section, bool)
	SetAll(ctx context.Context, sections []model.Section)
	Invalidate(ctx context.Context)
}

// ContentService is CRUD over sections. The service forwards whatever it is
// given; required-field checks live at the HTTP boundary, mirroring where the
// dashboard forms enforced them.
type ContentService struct {
	sectionRepo repository.SectionRepository
	cache       SectionsCache
}

func NewContentService(sectionRepo repository.SectionRepository, cache SectionsCache) *ContentService {
	return &ContentService{
		sectionRepo: sectionRepo,
		cache:       cache,
	}
}

// GetAllSections returns every section newest-first, serving from the cache
// when it is warm.
func (s *ContentService) GetAllSections(ctx context.Context) ([]model.Section, error) {
	if s.cache != nil {
		if sections, ok := s.cache.GetAll(ctx); ok {
			return sections, nil
		}
	}

	sections, err := s.sectionRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if s.cache != nil {
		s.cache.SetAll(ctx, sections)
	}
	return sections, nil
}

func (s *ContentService) GetSectionByID(ctx context.Context, id int64) (*model.Section, error) {
	section, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if section == nil {
		return nil, apperrors.NotFound("Section")
	}
	return section, nil
}

func (s *ContentService) CreateSection(ctx context.Context, params model.CreateSectionParams) (*model.Section, error) {
	section, err := s.sectionRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	s.invalidate(ctx)
	return section, nil
}

func (s *ContentService) UpdateSection(ctx context.Context, id int64, params model.UpdateSectionParams) (*model.Section, error) {
	section, err := s.sectionRepo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if section == nil {
		return nil, apperrors.NotFound("Section")
	}
	s.invalidate(ctx)
	return section, nil
}

// DeleteSection is idempotent: deleting an id that is already gone succeeds.
func (s *ContentService) DeleteSection(ctx context.Context, id int64) error {
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		return apperrors.Database(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *ContentService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
