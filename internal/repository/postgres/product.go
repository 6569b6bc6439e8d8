package postgres

import (
	"context"

	"github.com/streetkicks/storefront/internal/domain"
)

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	g *Gateway
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(g *Gateway) *ProductRepository {
	return &ProductRepository{g: g}
}

const productColumns = `id, slug, name, category, description, price, image, average_rating, review_count, created_at, updated_at`

// List retrieves all products, newest first
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	products := []*domain.Product{}
	if err := r.g.Select(ctx, "product.list", &products, query); err != nil {
		return nil, err
	}

	return products, nil
}

// GetBySlug retrieves a product by its URL slug
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	var product domain.Product
	if err := r.g.Get(ctx, "product.get_by_slug", &product, query, slug); err != nil {
		return nil, err
	}

	return &product, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product domain.Product
	if err := r.g.Get(ctx, "product.get_by_id", &product, query, id); err != nil {
		return nil, err
	}

	return &product, nil
}

// ListByCategory retrieves products in a category, newest first
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`

	products := []*domain.Product{}
	if err := r.g.Select(ctx, "product.list_by_category", &products, query, category); err != nil {
		return nil, err
	}

	return products, nil
}
