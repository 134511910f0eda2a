package model

import "time"

// AdminUser is the only class of authenticated actor. Rows are seeded out of
// band; there is no registration flow. The password column holds the literal
// credential string the operator seeded (see schema.sql).
type AdminUser struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Name      *string   `db:"name" json:"name"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PublicUser is the redacted shape returned at the route boundary.
type PublicUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

func (u *AdminUser) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

type UpdateProfileParams struct {
	Name      *string
	AvatarURL *string
}
