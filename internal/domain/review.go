package domain

import (
	"context"
	"time"
)

// Review represents a product review. At most one review exists per
// (product, author) pair; the storage layer enforces this with a unique
// constraint so concurrent submissions cannot create duplicates.
type Review struct {
	ID               int64     `json:"id" db:"id"`
	ProductID        int64     `json:"product_id" db:"product_id" validate:"required"`
	UserEmail        string    `json:"user_email" db:"user_email" validate:"required,email"`
	UserName         string    `json:"user_name,omitempty" db:"user_name"`
	Rating           int       `json:"rating" db:"rating" validate:"required,min=1,max=5"`
	Title            string    `json:"title" db:"title" validate:"required,min=1,max=100"`
	Comment          string    `json:"comment" db:"comment" validate:"required,min=1,max=1000"`
	VerifiedPurchase bool      `json:"verified_purchase" db:"verified_purchase"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`

	// Denormalized product fields, populated by joins on the
	// "my reviews" read path only.
	ProductName string `json:"product_name,omitempty" db:"product_name"`
	ProductSlug string `json:"product_slug,omitempty" db:"product_slug"`
}

// Reply represents a threaded reply attached to a review. Replies are
// owned by their review and removed with it.
type Reply struct {
	ID        int64     `json:"id" db:"id"`
	ReviewID  int64     `json:"review_id" db:"review_id" validate:"required"`
	UserEmail string    `json:"user_email" db:"user_email" validate:"required,email"`
	UserName  string    `json:"user_name,omitempty" db:"user_name"`
	Comment   string    `json:"comment" db:"comment" validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RatingStats holds the derived statistics for a product's review
// collection. It is recomputed on every read and never persisted.
type RatingStats struct {
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Distribution  map[int]int `json:"rating_distribution,omitempty"`
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Upsert inserts the review or, when one already exists for the
	// (product, author) pair, updates its rating/title/comment in place.
	// The stored verified_purchase flag is preserved on update. Returns
	// whether an existing row was updated.
	Upsert(ctx context.Context, review *Review) (isUpdate bool, err error)

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id int64) (*Review, error)

	// GetByProductAndAuthor retrieves the author's review for a product, if any
	GetByProductAndAuthor(ctx context.Context, productID int64, email string) (*Review, error)

	// ListByProduct retrieves all reviews for a product, newest first,
	// with the author display name resolved
	ListByProduct(ctx context.Context, productID int64) ([]*Review, error)

	// ListByAuthor retrieves all reviews written by the author, newest
	// first, with product name and slug resolved
	ListByAuthor(ctx context.Context, email string) ([]*Review, error)

	// Delete removes a review; replies cascade at the storage layer
	Delete(ctx context.Context, id int64) error

	// StatsByProduct computes rating statistics as a grouped aggregate
	// in the database, equivalent to stats.Compute over ListByProduct
	StatsByProduct(ctx context.Context, productID int64) (*RatingStats, error)
}

// ReplyRepository defines the interface for reply data access
type ReplyRepository interface {
	// Create persists a reply and fills in its server-assigned id,
	// timestamp and resolved display name
	Create(ctx context.Context, reply *Reply) error

	// GetByID retrieves a reply by ID
	GetByID(ctx context.Context, id int64) (*Reply, error)

	// ListByReview retrieves all replies for a review, oldest first
	ListByReview(ctx context.Context, reviewID int64) ([]*Reply, error)

	// Delete removes a reply
	Delete(ctx context.Context, id int64) error

	// CountByReview returns the number of replies for a review
	CountByReview(ctx context.Context, reviewID int64) (int, error)
}
