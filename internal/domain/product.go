package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. The review subsystem references
// products by id and never mutates them; average_rating and
// review_count are denormalized display fields maintained by the stats
// worker for catalog listings only.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	Slug          string          `json:"slug" db:"slug" validate:"required"`
	Name          string          `json:"name" db:"name" validate:"required,min=1,max=255"`
	Category      string          `json:"category" db:"category"`
	Description   *string         `json:"description,omitempty" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Image         string          `json:"image" db:"image"`
	AverageRating float64         `json:"average_rating" db:"average_rating"`
	ReviewCount   int             `json:"review_count" db:"review_count"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// List retrieves all products, newest first
	List(ctx context.Context) ([]*Product, error)

	// GetBySlug retrieves a product by its URL slug
	GetBySlug(ctx context.Context, slug string) (*Product, error)

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id int64) (*Product, error)

	// ListByCategory retrieves products in a category, newest first
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
}
