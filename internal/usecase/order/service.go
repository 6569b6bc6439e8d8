package order

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/pkg/validator"
)

// Service handles order placement and history
type Service struct {
	repo     domain.OrderRepository
	products domain.ProductRepository
	logger   *logger.Logger
}

// NewService creates a new order service
func NewService(repo domain.OrderRepository, products domain.ProductRepository, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

// Place creates a new order. The product is resolved at placement time
// and its title/image/price snapshotted onto the order so the history
// view survives later catalog edits.
func (s *Service) Place(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	product, err := s.products.GetByID(ctx, order.ProductID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to resolve product for order", err)
		}
		return nil, err
	}

	order.Reference = uuid.New()
	order.ProductTitle = product.Name
	order.ProductImage = product.Image
	order.Price = product.Price
	order.Status = domain.OrderStatusPending
	if order.Quantity == 0 {
		order.Quantity = 1
	}

	if err := validator.Get().Struct(order); err != nil {
		return nil, domain.NewValidationError(domain.CodeMissingFields, "size, quantity, name and address are required")
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"order_id":   order.ID,
		"reference":  order.Reference.String(),
		"product_id": order.ProductID,
	}).Info("Order placed")

	return order, nil
}

// ListForUser retrieves the user's order history, newest first
func (s *Service) ListForUser(ctx context.Context, email string) ([]*domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list orders", err)
		return nil, err
	}
	return orders, nil
}

// Cancel marks the user's pending order as cancelled
func (s *Service) Cancel(ctx context.Context, id int64, email string) error {
	if err := s.repo.UpdateStatus(ctx, id, email, domain.OrderStatusCancelled); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to cancel order", err)
		}
		return err
	}
	return nil
}

// HasPurchased reports whether the user has a fulfilled order for the
// product. The review engine uses this to stamp verified purchases.
func (s *Service) HasPurchased(ctx context.Context, email string, productID int64) (bool, error) {
	return s.repo.HasPurchased(ctx, email, productID)
}
