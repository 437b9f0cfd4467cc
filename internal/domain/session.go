package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous visitor session. Its ID names the storage
// namespace that holds the visitor's progress; it carries no identity
// beyond that.
type Session struct {
	ID        uuid.UUID `json:"id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionToken is returned to the client when a session is opened
type SessionToken struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
