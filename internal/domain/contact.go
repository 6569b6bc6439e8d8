package domain

import (
	"context"
	"time"
)

// ContactMessage is a support request submitted through the contact form.
type ContactMessage struct {
	ID          int64     `json:"id" db:"id"`
	UserEmail   string    `json:"user_email" db:"user_email" validate:"required,email"`
	Subject     string    `json:"subject" db:"subject" validate:"required,min=1,max=255"`
	Message     string    `json:"message" db:"message" validate:"required,min=1"`
	ContactType string    `json:"contact_type" db:"contact_type"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ContactRepository defines the interface for contact message data access
type ContactRepository interface {
	// Create persists a new contact message
	Create(ctx context.Context, msg *ContactMessage) error

	// ListByUser retrieves the user's messages, newest first
	ListByUser(ctx context.Context, email string) ([]*ContactMessage, error)
}
