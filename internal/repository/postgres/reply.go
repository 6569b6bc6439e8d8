package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/streetkicks/storefront/internal/domain"
)

// ReplyRepository implements domain.ReplyRepository for PostgreSQL
type ReplyRepository struct {
	g *Gateway
}

// NewReplyRepository creates a new PostgreSQL reply repository
func NewReplyRepository(g *Gateway) *ReplyRepository {
	return &ReplyRepository{g: g}
}

// Create persists a reply. The review FK rejects orphans; a constraint
// failure means the parent review is gone.
func (r *ReplyRepository) Create(ctx context.Context, reply *domain.Reply) error {
	query := `
		INSERT INTO review_replies (review_id, user_email, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	var row struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}

	err := r.g.GetWrite(ctx, "reply.create", &row, query, reply.ReviewID, reply.UserEmail, reply.Comment)
	if err != nil {
		if errors.Is(err, domain.ErrConstraint) {
			return domain.ErrNotFound
		}
		return err
	}

	reply.ID = row.ID
	reply.CreatedAt = row.CreatedAt

	// Resolve the display name the UI shows next to the reply.
	nameQuery := `SELECT COALESCE(username, '') FROM users WHERE email = $1`
	if err := r.g.Get(ctx, "reply.resolve_name", &reply.UserName, nameQuery, reply.UserEmail); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		reply.UserName = ""
	}

	return nil
}

// GetByID retrieves a reply by ID
func (r *ReplyRepository) GetByID(ctx context.Context, id int64) (*domain.Reply, error) {
	query := `
		SELECT rr.id, rr.review_id, rr.user_email, COALESCE(u.username, '') AS user_name,
		       rr.comment, rr.created_at
		FROM review_replies rr
		LEFT JOIN users u ON u.email = rr.user_email
		WHERE rr.id = $1
	`

	var reply domain.Reply
	if err := r.g.Get(ctx, "reply.get_by_id", &reply, query, id); err != nil {
		return nil, err
	}

	return &reply, nil
}

// ListByReview retrieves replies for a review, oldest first
func (r *ReplyRepository) ListByReview(ctx context.Context, reviewID int64) ([]*domain.Reply, error) {
	query := `
		SELECT rr.id, rr.review_id, rr.user_email, COALESCE(u.username, '') AS user_name,
		       rr.comment, rr.created_at
		FROM review_replies rr
		LEFT JOIN users u ON u.email = rr.user_email
		WHERE rr.review_id = $1
		ORDER BY rr.created_at ASC
	`

	replies := []*domain.Reply{}
	if err := r.g.Select(ctx, "reply.list_by_review", &replies, query, reviewID); err != nil {
		return nil, err
	}

	return replies, nil
}

// Delete removes a reply
func (r *ReplyRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.g.Exec(ctx, "reply.delete", `DELETE FROM review_replies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// CountByReview returns the number of replies for a review
func (r *ReplyRepository) CountByReview(ctx context.Context, reviewID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM review_replies WHERE review_id = $1`

	if err := r.g.Get(ctx, "reply.count_by_review", &count, query, reviewID); err != nil {
		return 0, err
	}

	return count, nil
}
