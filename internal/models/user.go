package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a person known to the directory.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name shown in balances.
	Name string

	// Email is the user's email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// Empty for users created without credentials.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and creation time.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// HasPassword reports whether the user can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
