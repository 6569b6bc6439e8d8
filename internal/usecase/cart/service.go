package cart

import (
	"context"
	"errors"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/pkg/validator"
)

// Service handles the server-owned shopping cart
type Service struct {
	repo     domain.CartRepository
	products domain.ProductRepository
	logger   *logger.Logger
}

// NewService creates a new cart service
func NewService(repo domain.CartRepository, products domain.ProductRepository, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

// Add puts a product in the user's cart. Re-adding the same product
// and size bumps the quantity instead of duplicating the row.
func (s *Service) Add(ctx context.Context, item *domain.CartItem) error {
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	if err := validator.Get().Struct(item); err != nil {
		return domain.NewValidationError(domain.CodeMissingFields, "product and size are required")
	}

	if _, err := s.products.GetByID(ctx, item.ProductID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to resolve product for cart", err)
		}
		return err
	}

	if err := s.repo.Add(ctx, item); err != nil {
		s.logger.Error("Failed to add cart item", err)
		return err
	}

	return nil
}

// UpdateQuantity sets the quantity on the user's cart row. Zero removes
// the row.
func (s *Service) UpdateQuantity(ctx context.Context, id int64, email string, quantity int) error {
	if quantity < 0 {
		return domain.NewValidationError(domain.CodeMissingFields, "quantity must not be negative")
	}

	if quantity == 0 {
		return s.Remove(ctx, id, email)
	}

	if err := s.repo.UpdateQuantity(ctx, id, email, quantity); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to update cart quantity", err)
		}
		return err
	}

	return nil
}

// Remove deletes the user's cart row
func (s *Service) Remove(ctx context.Context, id int64, email string) error {
	if err := s.repo.Remove(ctx, id, email); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to remove cart item", err)
		}
		return err
	}
	return nil
}

// List retrieves the user's cart with product fields joined for display
func (s *Service) List(ctx context.Context, email string) ([]*domain.CartItem, error) {
	items, err := s.repo.ListByUser(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list cart", err)
		return nil, err
	}
	return items, nil
}
