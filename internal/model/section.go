package model

import "time"

// Section is a public content record managed through the dashboard.
// Sections have no owner; any authenticated admin may edit any of them.
type Section struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateSectionParams struct {
	Title       string
	Description *string
	ImageURL    *string
}

// UpdateSectionParams carries a partial update; nil fields are left untouched.
type UpdateSectionParams struct {
	Title       *string
	Description *string
	ImageURL    *string
}
