package postgres

import (
	"context"

	"github.com/streetkicks/storefront/internal/domain"
)

// WishlistRepository implements domain.WishlistRepository for PostgreSQL
type WishlistRepository struct {
	g *Gateway
}

// NewWishlistRepository creates a new PostgreSQL wishlist repository
func NewWishlistRepository(g *Gateway) *WishlistRepository {
	return &WishlistRepository{g: g}
}

// Add inserts a wishlist row. ON CONFLICT DO NOTHING keeps the add
// idempotent; exists reports whether the product was already present.
func (r *WishlistRepository) Add(ctx context.Context, email string, productID int64) (bool, error) {
	query := `
		INSERT INTO wishlist_items (user_email, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_email, product_id) DO NOTHING
	`

	affected, err := r.g.Exec(ctx, "wishlist.add", query, email, productID)
	if err != nil {
		return false, err
	}

	return affected == 0, nil
}

// Remove deletes the row for (email, product)
func (r *WishlistRepository) Remove(ctx context.Context, email string, productID int64) error {
	query := `DELETE FROM wishlist_items WHERE user_email = $1 AND product_id = $2`

	affected, err := r.g.Exec(ctx, "wishlist.remove", query, email, productID)
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListByUser retrieves the wishlist with product fields joined
func (r *WishlistRepository) ListByUser(ctx context.Context, email string) ([]*domain.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_email, w.product_id, w.created_at,
		       COALESCE(p.name, '') AS product_name, COALESCE(p.slug, '') AS product_slug,
		       COALESCE(p.image, '') AS product_image, COALESCE(p.price, 0) AS price
		FROM wishlist_items w
		LEFT JOIN products p ON p.id = w.product_id
		WHERE w.user_email = $1
		ORDER BY w.created_at DESC
	`

	items := []*domain.WishlistItem{}
	if err := r.g.Select(ctx, "wishlist.list_by_user", &items, query, email); err != nil {
		return nil, err
	}

	return items, nil
}

// Count returns the number of wishlist rows for the user
func (r *WishlistRepository) Count(ctx context.Context, email string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM wishlist_items WHERE user_email = $1`

	if err := r.g.Get(ctx, "wishlist.count", &count, query, email); err != nil {
		return 0, err
	}

	return count, nil
}
