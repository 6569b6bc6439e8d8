package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/streetkicks/storefront/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	g *Gateway
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(g *Gateway) *ReviewRepository {
	return &ReviewRepository{g: g}
}

// Upsert inserts the review or updates the existing row for the
// (product, author) pair. The unique constraint makes the check-then-act
// atomic: two concurrent submissions for the same pair cannot both
// insert. xmax <> 0 distinguishes the conflict-update path from a fresh
// insert; verified_purchase is deliberately left untouched on update.
func (r *ReviewRepository) Upsert(ctx context.Context, review *domain.Review) (bool, error) {
	query := `
		INSERT INTO reviews (product_id, user_email, rating, title, comment, verified_purchase)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, user_email) DO UPDATE
		SET rating = EXCLUDED.rating,
		    title = EXCLUDED.title,
		    comment = EXCLUDED.comment,
		    updated_at = NOW()
		RETURNING id, verified_purchase, created_at, updated_at, (xmax <> 0) AS is_update
	`

	var row struct {
		ID               int64     `db:"id"`
		VerifiedPurchase bool      `db:"verified_purchase"`
		CreatedAt        time.Time `db:"created_at"`
		UpdatedAt        time.Time `db:"updated_at"`
		IsUpdate         bool      `db:"is_update"`
	}

	err := r.g.GetWrite(ctx, "review.upsert", &row, query,
		review.ProductID,
		review.UserEmail,
		review.Rating,
		review.Title,
		review.Comment,
		review.VerifiedPurchase,
	)
	if err != nil {
		// The product FK is the only constraint the upsert can still
		// trip; surface it as a missing product.
		if errors.Is(err, domain.ErrConstraint) {
			return false, domain.ErrNotFound
		}
		return false, err
	}

	review.ID = row.ID
	review.VerifiedPurchase = row.VerifiedPurchase
	review.CreatedAt = row.CreatedAt
	review.UpdatedAt = row.UpdatedAt

	return row.IsUpdate, nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `
		SELECT r.id, r.product_id, r.user_email, COALESCE(u.username, '') AS user_name,
		       r.rating, r.title, r.comment, r.verified_purchase, r.created_at, r.updated_at
		FROM reviews r
		LEFT JOIN users u ON u.email = r.user_email
		WHERE r.id = $1
	`

	var review domain.Review
	if err := r.g.Get(ctx, "review.get_by_id", &review, query, id); err != nil {
		return nil, err
	}

	return &review, nil
}

// GetByProductAndAuthor retrieves the author's review for a product
func (r *ReviewRepository) GetByProductAndAuthor(ctx context.Context, productID int64, email string) (*domain.Review, error) {
	query := `
		SELECT id, product_id, user_email, rating, title, comment, verified_purchase, created_at, updated_at
		FROM reviews
		WHERE product_id = $1 AND user_email = $2
	`

	var review domain.Review
	if err := r.g.Get(ctx, "review.get_by_product_author", &review, query, productID, email); err != nil {
		return nil, err
	}

	return &review, nil
}

// ListByProduct retrieves reviews for a product, newest first
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.product_id, r.user_email, COALESCE(u.username, '') AS user_name,
		       r.rating, r.title, r.comment, r.verified_purchase, r.created_at, r.updated_at
		FROM reviews r
		LEFT JOIN users u ON u.email = r.user_email
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
	`

	reviews := []*domain.Review{}
	if err := r.g.Select(ctx, "review.list_by_product", &reviews, query, productID); err != nil {
		return nil, err
	}

	return reviews, nil
}

// ListByAuthor retrieves the author's reviews, newest first, with the
// product name and slug joined for the "my reviews" view
func (r *ReviewRepository) ListByAuthor(ctx context.Context, email string) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.product_id, r.user_email, r.rating, r.title, r.comment,
		       r.verified_purchase, r.created_at, r.updated_at,
		       COALESCE(p.name, '') AS product_name, COALESCE(p.slug, '') AS product_slug
		FROM reviews r
		LEFT JOIN products p ON p.id = r.product_id
		WHERE r.user_email = $1
		ORDER BY r.created_at DESC
	`

	reviews := []*domain.Review{}
	if err := r.g.Select(ctx, "review.list_by_author", &reviews, query, email); err != nil {
		return nil, err
	}

	return reviews, nil
}

// Delete removes a review; the replies FK cascades at the schema level
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.g.Exec(ctx, "review.delete", `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// StatsByProduct computes rating statistics as a grouped aggregate,
// equivalent to stats.Compute/stats.Distribution over ListByProduct.
func (r *ReviewRepository) StatsByProduct(ctx context.Context, productID int64) (*domain.RatingStats, error) {
	query := `
		SELECT COUNT(*) AS total_reviews,
		       COALESCE(ROUND(AVG(rating)::numeric, 1), 0) AS average_rating,
		       COUNT(*) FILTER (WHERE rating = 1) AS stars_1,
		       COUNT(*) FILTER (WHERE rating = 2) AS stars_2,
		       COUNT(*) FILTER (WHERE rating = 3) AS stars_3,
		       COUNT(*) FILTER (WHERE rating = 4) AS stars_4,
		       COUNT(*) FILTER (WHERE rating = 5) AS stars_5
		FROM reviews
		WHERE product_id = $1
	`

	var row struct {
		TotalReviews  int     `db:"total_reviews"`
		AverageRating float64 `db:"average_rating"`
		Stars1        int     `db:"stars_1"`
		Stars2        int     `db:"stars_2"`
		Stars3        int     `db:"stars_3"`
		Stars4        int     `db:"stars_4"`
		Stars5        int     `db:"stars_5"`
	}

	if err := r.g.Get(ctx, "review.stats_by_product", &row, query, productID); err != nil {
		return nil, err
	}

	return &domain.RatingStats{
		AverageRating: row.AverageRating,
		TotalReviews:  row.TotalReviews,
		Distribution: map[int]int{
			1: row.Stars1,
			2: row.Stars2,
			3: row.Stars3,
			4: row.Stars4,
			5: row.Stars5,
		},
	}, nil
}
