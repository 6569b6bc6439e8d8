package postgres

import (
	"context"
	"time"

	"github.com/streetkicks/storefront/internal/domain"
)

// ContactRepository implements domain.ContactRepository for PostgreSQL
type ContactRepository struct {
	g *Gateway
}

// NewContactRepository creates a new PostgreSQL contact repository
func NewContactRepository(g *Gateway) *ContactRepository {
	return &ContactRepository{g: g}
}

// Create persists a new contact message
func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (user_email, subject, message, contact_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`

	var row struct {
		ID        int64     `db:"id"`
		Status    string    `db:"status"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	err := r.g.GetWrite(ctx, "contact.create", &row, query,
		msg.UserEmail, msg.Subject, msg.Message, msg.ContactType)
	if err != nil {
		return err
	}

	msg.ID = row.ID
	msg.Status = row.Status
	msg.CreatedAt = row.CreatedAt
	msg.UpdatedAt = row.UpdatedAt

	return nil
}

// ListByUser retrieves the user's messages, newest first
func (r *ContactRepository) ListByUser(ctx context.Context, email string) ([]*domain.ContactMessage, error) {
	query := `
		SELECT id, user_email, subject, message, contact_type, status, created_at, updated_at
		FROM contact_messages
		WHERE user_email = $1
		ORDER BY created_at DESC
	`

	messages := []*domain.ContactMessage{}
	if err := r.g.Select(ctx, "contact.list_by_user", &messages, query, email); err != nil {
		return nil, err
	}

	return messages, nil
}
