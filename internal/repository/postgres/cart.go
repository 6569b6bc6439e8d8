package postgres

import (
	"context"
	"time"

	"github.com/streetkicks/storefront/internal/domain"
)

// CartRepository implements domain.CartRepository for PostgreSQL
type CartRepository struct {
	g *Gateway
}

// NewCartRepository creates a new PostgreSQL cart repository
func NewCartRepository(g *Gateway) *CartRepository {
	return &CartRepository{g: g}
}

// Add inserts a cart row; a repeat add of the same (user, product, size)
// bumps the quantity instead of duplicating the row.
func (r *CartRepository) Add(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (user_email, product_id, size, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_email, product_id, size) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity, created_at
	`

	var row struct {
		ID        int64     `db:"id"`
		Quantity  int       `db:"quantity"`
		CreatedAt time.Time `db:"created_at"`
	}

	err := r.g.GetWrite(ctx, "cart.add", &row, query,
		item.UserEmail, item.ProductID, item.Size, item.Quantity)
	if err != nil {
		return err
	}

	item.ID = row.ID
	item.Quantity = row.Quantity
	item.CreatedAt = row.CreatedAt

	return nil
}

// UpdateQuantity sets the quantity of a row owned by email
func (r *CartRepository) UpdateQuantity(ctx context.Context, id int64, email string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_email = $3`

	affected, err := r.g.Exec(ctx, "cart.update_quantity", query, quantity, id, email)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Remove deletes a row owned by email
func (r *CartRepository) Remove(ctx context.Context, id int64, email string) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_email = $2`

	affected, err := r.g.Exec(ctx, "cart.remove", query, id, email)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListByUser retrieves the user's cart with product fields joined
func (r *CartRepository) ListByUser(ctx context.Context, email string) ([]*domain.CartItem, error) {
	query := `
		SELECT c.id, c.user_email, c.product_id, c.size, c.quantity, c.created_at,
		       COALESCE(p.name, '') AS product_name, COALESCE(p.slug, '') AS product_slug,
		       COALESCE(p.image, '') AS product_image, COALESCE(p.price, 0) AS price
		FROM cart_items c
		LEFT JOIN products p ON p.id = c.product_id
		WHERE c.user_email = $1
		ORDER BY c.created_at DESC
	`

	items := []*domain.CartItem{}
	if err := r.g.Select(ctx, "cart.list_by_user", &items, query, email); err != nil {
		return nil, err
	}

	return items, nil
}
