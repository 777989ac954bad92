package session

import (
	"time"

	"github.com/google/uuid"
)

// User is an HR staff profile row. Candidates never sign in.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the decoded current-session value. Consumers only care about
// present/absent plus who the user is.
type Session struct {
	TokenID   string
	UserID    uuid.UUID
	Email     string
	Name      string
	ExpiresAt time.Time
}
