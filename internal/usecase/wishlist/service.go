package wishlist

import (
	"context"
	"errors"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
)

// Service handles the user's wishlist
type Service struct {
	repo     domain.WishlistRepository
	products domain.ProductRepository
	logger   *logger.Logger
}

// NewService creates a new wishlist service
func NewService(repo domain.WishlistRepository, products domain.ProductRepository, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

// Add puts a product on the user's wishlist. Adding a product that is
// already there is not an error; the second result reports it.
func (s *Service) Add(ctx context.Context, email string, productID int64) (alreadyPresent bool, err error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to resolve product for wishlist", err)
		}
		return false, err
	}

	exists, err := s.repo.Add(ctx, email, productID)
	if err != nil {
		s.logger.Error("Failed to add wishlist item", err)
		return false, err
	}

	return exists, nil
}

// Remove takes a product off the user's wishlist
func (s *Service) Remove(ctx context.Context, email string, productID int64) error {
	if err := s.repo.Remove(ctx, email, productID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to remove wishlist item", err)
		}
		return err
	}
	return nil
}

// List retrieves the user's wishlist with product fields joined
func (s *Service) List(ctx context.Context, email string) ([]*domain.WishlistItem, error) {
	items, err := s.repo.ListByUser(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list wishlist", err)
		return nil, err
	}
	return items, nil
}

// Count returns the number of items on the user's wishlist
func (s *Service) Count(ctx context.Context, email string) (int, error) {
	count, err := s.repo.Count(ctx, email)
	if err != nil {
		s.logger.Error("Failed to count wishlist", err)
		return 0, err
	}
	return count, nil
}
