package product

import (
	"context"
	"errors"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
)

// Catalog defines the cache the service reads through. A miss is
// reported as domain.ErrNotFound; any other failure is treated as a
// miss too, so the catalog stays up when Redis is down.
type Catalog interface {
	GetList(ctx context.Context, category string) ([]*domain.Product, error)
	SetList(ctx context.Context, category string, products []*domain.Product) error
	GetDetail(ctx context.Context, slug string) (*domain.Product, error)
	SetDetail(ctx context.Context, product *domain.Product) error
}

// Service handles catalog reads with read-through caching
type Service struct {
	repo   domain.ProductRepository
	cache  Catalog
	logger *logger.Logger
}

// NewService creates a new product service
func NewService(repo domain.ProductRepository, cache Catalog, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// List retrieves the catalog, optionally filtered by category
func (s *Service) List(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.cache.GetList(ctx, category)
	if err == nil {
		s.logger.Debugf("Catalog cache hit (category=%q)", category)
		return products, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warnf("Catalog cache read failed (category=%q): %v", category, err)
	}

	if category == "" {
		products, err = s.repo.List(ctx)
	} else {
		products, err = s.repo.ListByCategory(ctx, category)
	}
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}

	if err := s.cache.SetList(ctx, category, products); err != nil {
		s.logger.Warnf("Failed to cache product list (category=%q): %v", category, err)
	}

	return products, nil
}

// GetBySlug retrieves a single product by its URL slug
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.cache.GetDetail(ctx, slug)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warnf("Catalog cache read failed (slug=%q): %v", slug, err)
	}

	product, err = s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}

	if err := s.cache.SetDetail(ctx, product); err != nil {
		s.logger.Warnf("Failed to cache product %q: %v", slug, err)
	}

	return product, nil
}

// GetByID retrieves a single product by ID, bypassing the cache
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}
	return product, nil
}
