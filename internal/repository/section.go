package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vision2030/site-server/internal/model"
)

type SectionRepository interface {
	// FindAll returns every section, newest first.
	FindAll(ctx context.Context) ([]model.Section, error)
	FindByID(ctx context.Context, id int64) (*model.Section, error)
	Create(ctx context.Context, params model.CreateSectionParams) (*model.Section, error)
	// Update applies only the non-nil fields and returns the updated row,
	// or (nil, nil) when the id does not exist.
	Update(ctx context.Context, id int64, params model.UpdateSectionParams) (*model.Section, error)
	Delete(ctx context.Context, id int64) error
}

type sectionRepo struct {
	db *sqlx.DB
}

func NewSectionRepository(db *sqlx.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) FindAll(ctx context.Context) ([]model.Section, error) {
	sections := []model.Section{}
	err := r.db.SelectContext(ctx, &sections, `
		SELECT * FROM sections ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepo) FindByID(ctx context.Context, id int64) (*model.Section, error) {
	var section model.Section
	err := r.db.GetContext(ctx, &section, `
		SELECT * FROM sections WHERE id = $1
	`, id)
	return noRowsAsNil(&section, err)
}

func (r *sectionRepo) Create(ctx context.Context, params model.CreateSectionParams) (*model.Section, error) {
	var section model.Section
	err := r.db.GetContext(ctx, &section, `
		INSERT INTO sections (title, description, image_url)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.Title, params.Description, params.ImageURL)
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) Update(ctx context.Context, id int64, params model.UpdateSectionParams) (*model.Section, error) {
	var section model.Section
	err := r.db.GetContext(ctx, &section, `
		UPDATE sections SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			image_url = COALESCE($4, image_url)
		WHERE id = $1
		RETURNING *
	`, id, params.Title, params.Description, params.ImageURL)
	return noRowsAsNil(&section, err)
}

// Delete is idempotent: deleting an absent id reports success.
func (r *sectionRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
	return err
}
