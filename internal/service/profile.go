package service

import (
	"context"

	apperrors "github.com/vision2030/site-server/internal/errors"
	"github.com/vision2030/site-server/internal/model"
	"github.com/vision2030/site-server/internal/repository"
)

// ProfileService reads and updates the logged-in admin's own record.
type ProfileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*model.AdminUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields. Avatar URLs are stored as given;
// the dashboard never validated their format and neither does this layer.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, params model.UpdateProfileParams) error {
	if err := s.userRepo.UpdateProfile(ctx, userID, params); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// UpdatePassword compares the current password by exact string equality
// before overwriting the stored column. Minimum length is the HTTP
// boundary's concern.
func (s *ProfileService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.Database(err)
	}
	if user == nil {
		return apperrors.NotFound("User")
	}

	if user.Password != currentPassword {
		return apperrors.WrongCurrentPassword()
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newPassword); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
