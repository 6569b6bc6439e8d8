package domain

import (
	"context"
	"time"
)

// User represents a registered account. The email is the stable
// identity every owned resource (review, reply, order, cart row) is
// keyed by.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username" validate:"required,min=1,max=100"`
	Email        string    `json:"email" db:"email" validate:"required,email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ProfilePhoto *string   `json:"profile_photo,omitempty" db:"profile_photo"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create persists a new user; a duplicate email surfaces as ErrConstraint
	Create(ctx context.Context, user *User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile updates the username for the given email
	UpdateProfile(ctx context.Context, email, username string) error

	// UpdatePhoto stores the uploaded profile photo filename
	UpdatePhoto(ctx context.Context, email, filename string) error
}
