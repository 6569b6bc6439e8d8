package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order represents a single-line purchase. Besides the product
// reference it carries a denormalized title/image snapshot so order
// history survives catalog changes.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	Reference       uuid.UUID       `json:"reference" db:"reference"`
	UserEmail       string          `json:"user_email" db:"user_email" validate:"required,email"`
	ProductID       int64           `json:"product_id" db:"product_id" validate:"required"`
	ProductTitle    string          `json:"product_title" db:"product_title" validate:"required"`
	ProductImage    string          `json:"product_image" db:"product_image"`
	Size            string          `json:"size" db:"size" validate:"required"`
	Price           decimal.Decimal `json:"price" db:"price"`
	Quantity        int             `json:"quantity" db:"quantity" validate:"required,min=1"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	CustomerName    string          `json:"customer_name" db:"customer_name" validate:"required"`
	CustomerAddress string          `json:"customer_address" db:"customer_address" validate:"required"`
	CustomerPhone   string          `json:"customer_phone" db:"customer_phone"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create persists a new order
	Create(ctx context.Context, order *Order) error

	// ListByUser retrieves the user's orders, newest first
	ListByUser(ctx context.Context, email string) ([]*Order, error)

	// UpdateStatus sets the status of an order owned by email;
	// returns ErrNotFound when no such order exists for that owner
	UpdateStatus(ctx context.Context, id int64, email, status string) error

	// HasPurchased reports whether the user has a completed or
	// delivered order for the product
	HasPurchased(ctx context.Context, email string, productID int64) (bool, error)
}
