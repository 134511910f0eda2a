package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vision2030/site-server/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	// FindByCredentials matches both email and password by exact equality
	// against the stored columns. A miss returns (nil, nil).
	FindByCredentials(ctx context.Context, email, password string) (*model.AdminUser, error)
	UpdateProfile(ctx context.Context, id string, params model.UpdateProfileParams) error
	UpdatePassword(ctx context.Context, id string, password string) error
}

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM admin_users WHERE id = $1
	`, id)
	return noRowsAsNil(&user, err)
}

func (r *userRepo) FindByCredentials(ctx context.Context, email, password string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM admin_users WHERE email = $1 AND password = $2
	`, email, password)
	return noRowsAsNil(&user, err)
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, params model.UpdateProfileParams) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_users SET
			name = COALESCE($2, name),
			avatar_url = COALESCE($3, avatar_url)
		WHERE id = $1
	`, id, params.Name, params.AvatarURL)
	return err
}

func (r *userRepo) UpdatePassword(ctx context.Context, id string, password string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_users SET password = $2 WHERE id = $1
	`, id, password)
	return err
}
