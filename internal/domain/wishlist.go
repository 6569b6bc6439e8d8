package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WishlistItem is a server-owned wishlist row keyed by user.
type WishlistItem struct {
	ID        int64     `json:"id" db:"id"`
	UserEmail string    `json:"user_email" db:"user_email"`
	ProductID int64     `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	ProductName  string          `json:"product_name,omitempty" db:"product_name"`
	ProductSlug  string          `json:"product_slug,omitempty" db:"product_slug"`
	ProductImage string          `json:"product_image,omitempty" db:"product_image"`
	Price        decimal.Decimal `json:"price" db:"price"`
}

// WishlistRepository defines the interface for wishlist data access
type WishlistRepository interface {
	// Add inserts a wishlist row; adding an already-present product is
	// reported via exists=true, not an error
	Add(ctx context.Context, email string, productID int64) (exists bool, err error)

	// Remove deletes the row for (email, product)
	Remove(ctx context.Context, email string, productID int64) error

	// ListByUser retrieves the wishlist with product fields joined
	ListByUser(ctx context.Context, email string) ([]*WishlistItem, error)

	// Count returns the number of wishlist rows for the user
	Count(ctx context.Context, email string) (int, error)
}
