package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a server-owned cart row keyed by user. The server is the
// single source of truth; clients only hold a read-through view.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserEmail string    `json:"user_email" db:"user_email" validate:"required,email"`
	ProductID int64     `json:"product_id" db:"product_id" validate:"required"`
	Size      string    `json:"size" db:"size" validate:"required"`
	Quantity  int       `json:"quantity" db:"quantity" validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined product fields for display.
	ProductName  string          `json:"product_name,omitempty" db:"product_name"`
	ProductSlug  string          `json:"product_slug,omitempty" db:"product_slug"`
	ProductImage string          `json:"product_image,omitempty" db:"product_image"`
	Price        decimal.Decimal `json:"price" db:"price"`
}

// CartRepository defines the interface for cart data access
type CartRepository interface {
	// Add inserts a cart row or bumps the quantity when the same
	// (user, product, size) row already exists
	Add(ctx context.Context, item *CartItem) error

	// UpdateQuantity sets the quantity of a row owned by email
	UpdateQuantity(ctx context.Context, id int64, email string, quantity int) error

	// Remove deletes a row owned by email
	Remove(ctx context.Context, id int64, email string) error

	// ListByUser retrieves the user's cart with product fields joined
	ListByUser(ctx context.Context, email string) ([]*CartItem, error)
}
