package model

import "time"

// Session grants time-bounded access. The id doubles as the bearer token
// carried in the sessionId cookie; validity is expires_at > now.
type Session struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateSessionParams struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}
