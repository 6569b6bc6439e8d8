package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/streetkicks/storefront/internal/pkg/logger"
)

// Invalidator drops cached catalog entries for a product after its
// denormalized rating changes.
type Invalidator interface {
	InvalidateProduct(ctx context.Context, slug string) error
}

// Calculator refreshes the denormalized rating columns on a product.
// Always a full recalculation from the reviews table, so a lost or
// reordered event self-corrects on the next one.
type Calculator struct {
	db     *sqlx.DB
	cache  Invalidator
	logger *logger.Logger
}

// NewCalculator creates a new rating calculator. The cache may be nil.
func NewCalculator(db *sqlx.DB, cache Invalidator, logger *logger.Logger) *Calculator {
	return &Calculator{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// CalculateAndUpdate recomputes a product's average rating and review
// count from its review collection and stores them on the product row.
func (c *Calculator) CalculateAndUpdate(ctx context.Context, productID int64) error {
	query := `
		UPDATE products
		SET
			average_rating = COALESCE(
				(SELECT ROUND(AVG(rating)::numeric, 1)
				 FROM reviews
				 WHERE product_id = $1),
				0
			),
			review_count = (SELECT COUNT(*) FROM reviews WHERE product_id = $1),
			updated_at = NOW()
		WHERE id = $1
		RETURNING slug
	`

	var slug string
	err := c.db.GetContext(ctx, &slug, query, productID)
	if errors.Is(err, sql.ErrNoRows) {
		// Product gone, nothing to refresh
		c.logger.WithFields(map[string]any{
			"product_id": productID,
		}).Info("Product not found, skipping rating refresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.InvalidateProduct(ctx, slug); err != nil {
			c.logger.Warnf("Failed to invalidate catalog cache for %s: %v", slug, err)
		}
	}

	c.logger.WithFields(map[string]any{
		"product_id": productID,
		"slug":       slug,
	}).Info("Product rating refreshed")

	return nil
}

// GetCurrentRating retrieves the current average rating for verification (used in tests)
func (c *Calculator) GetCurrentRating(ctx context.Context, productID int64) (float64, error) {
	var rating sql.NullFloat64
	query := `SELECT average_rating FROM products WHERE id = $1`

	err := c.db.GetContext(ctx, &rating, query, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to get current rating: %w", err)
	}

	if !rating.Valid {
		return 0, nil
	}

	return rating.Float64, nil
}
