package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vision2030/site-server/internal/config"
	apperrors "github.com/vision2030/site-server/internal/errors"
	"github.com/vision2030/site-server/internal/model"
	"github.com/vision2030/site-server/internal/repository"
	"github.com/vision2030/site-server/internal/util"
)

// AuthService owns credential checks and the session lifecycle.
// Credentials are matched by exact equality against the stored password
// column; the deployment seeds admin_users out of band.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Login verifies the credentials and creates a session valid for seven days.
// The full user row is returned; redaction happens at the route boundary.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AdminUser, *model.Session, error) {
	user, err := s.userRepo.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, nil, apperrors.InvalidCredentials()
	}

	session, err := s.sessionRepo.Create(ctx, model.CreateSessionParams{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(config.SessionTTL),
	})
	if err != nil {
		return nil, nil, apperrors.SessionCreateFailed(err)
	}

	return user, session, nil
}

// ValidateSession is read-only: there is no sliding expiry. Any failure along
// the way, including a malformed id, reads as "not authenticated".
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*model.AdminUser, bool) {
	if !util.IsValidUUID(sessionID) {
		return nil, false
	}

	session, err := s.sessionRepo.FindActiveByID(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Msg("session lookup failed")
		return nil, false
	}
	if session == nil {
		return nil, false
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		log.Error().Err(err).Msg("session user lookup failed")
		return nil, false
	}
	if user == nil {
		return nil, false
	}

	return user, true
}

// Logout deletes the session row. Deleting an id that never existed, or one
// that cannot reference a row at all, still succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if !util.IsValidUUID(sessionID) {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// ChangePassword re-authenticates with the old password before overwriting
// the stored column.
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByCredentials(ctx, email, oldPassword)
	if err != nil {
		return apperrors.Database(err)
	}
	if user == nil {
		return apperrors.WrongOldPassword()
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
