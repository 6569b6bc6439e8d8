package postgres

import (
	"context"
	"time"

	"github.com/streetkicks/storefront/internal/domain"
)

// OrderRepository implements domain.OrderRepository for PostgreSQL
type OrderRepository struct {
	g *Gateway
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(g *Gateway) *OrderRepository {
	return &OrderRepository{g: g}
}

// Create persists a new order
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (reference, user_email, product_id, product_title, product_image,
		                    size, price, quantity, payment_method, customer_name,
		                    customer_address, customer_phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	var row struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}

	err := r.g.GetWrite(ctx, "order.create", &row, query,
		order.Reference,
		order.UserEmail,
		order.ProductID,
		order.ProductTitle,
		order.ProductImage,
		order.Size,
		order.Price,
		order.Quantity,
		order.PaymentMethod,
		order.CustomerName,
		order.CustomerAddress,
		order.CustomerPhone,
		order.Status,
	)
	if err != nil {
		return err
	}

	order.ID = row.ID
	order.CreatedAt = row.CreatedAt

	return nil
}

// ListByUser retrieves the user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, email string) ([]*domain.Order, error) {
	query := `
		SELECT id, reference, user_email, product_id, product_title, product_image,
		       size, price, quantity, payment_method, customer_name,
		       customer_address, customer_phone, status, created_at
		FROM orders
		WHERE user_email = $1
		ORDER BY created_at DESC
	`

	orders := []*domain.Order{}
	if err := r.g.Select(ctx, "order.list_by_user", &orders, query, email); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus sets the status of an order owned by email. The owner
// predicate is part of the statement so a mismatched actor cannot
// touch the row.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, email, status string) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2 AND user_email = $3`

	affected, err := r.g.Exec(ctx, "order.update_status", query, status, id, email)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// HasPurchased reports whether the user has a delivered or completed
// order for the product. Backs the verified-purchase badge.
func (r *OrderRepository) HasPurchased(ctx context.Context, email string, productID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM orders
			WHERE user_email = $1 AND product_id = $2 AND status IN ($3, $4)
		)
	`

	var exists bool
	err := r.g.Get(ctx, "order.has_purchased", &exists, query,
		email, productID, domain.OrderStatusDelivered, domain.OrderStatusCompleted)
	if err != nil {
		return false, err
	}

	return exists, nil
}
