package postgres

import (
	"context"
	"time"

	"github.com/streetkicks/storefront/internal/domain"
)

// UserRepository implements domain.UserRepository for PostgreSQL
type UserRepository struct {
	g *Gateway
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(g *Gateway) *UserRepository {
	return &UserRepository{g: g}
}

// Create persists a new user; the unique email index surfaces
// duplicates as ErrConstraint
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	var row struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	if err := r.g.GetWrite(ctx, "user.create", &row, query, user.Username, user.Email, user.PasswordHash); err != nil {
		return err
	}

	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	user.UpdatedAt = row.UpdatedAt

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, profile_photo, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	if err := r.g.Get(ctx, "user.get_by_email", &user, query, email); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateProfile updates the username for the given email
func (r *UserRepository) UpdateProfile(ctx context.Context, email, username string) error {
	query := `UPDATE users SET username = $1, updated_at = NOW() WHERE email = $2`

	affected, err := r.g.Exec(ctx, "user.update_profile", query, username, email)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdatePhoto stores the uploaded profile photo filename
func (r *UserRepository) UpdatePhoto(ctx context.Context, email, filename string) error {
	query := `UPDATE users SET profile_photo = $1, updated_at = NOW() WHERE email = $2`

	affected, err := r.g.Exec(ctx, "user.update_photo", query, filename, email)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
