package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
)

// MockOrderRepository is a mock implementation of domain.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = 1
	}
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, email string) ([]*domain.Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, email, status string) error {
	args := m.Called(ctx, id, email, status)
	return args.Error(0)
}

func (m *MockOrderRepository) HasPurchased(ctx context.Context, email string, productID int64) (bool, error) {
	args := m.Called(ctx, email, productID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository covers the product lookups order placement makes
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func newTestService() (*Service, *MockOrderRepository, *MockProductRepository) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	log := logger.New("test")
	return NewService(mockOrders, mockProducts, log), mockOrders, mockProducts
}

func TestService_Place_SnapshotsProduct(t *testing.T) {
	service, mockOrders, mockProducts := newTestService()

	mockProducts.On("GetByID", mock.Anything, int64(1)).Return(&domain.Product{
		ID:    1,
		Name:  "Air Runner",
		Image: "air-runner.webp",
		Price: decimal.NewFromFloat(129.99),
	}, nil)
	mockOrders.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ProductTitle == "Air Runner" &&
			o.Status == domain.OrderStatusPending &&
			o.Reference.String() != "00000000-0000-0000-0000-000000000000"
	})).Return(nil)

	order, err := service.Place(context.Background(), &domain.Order{
		UserEmail:       "jordan@example.com",
		ProductID:       1,
		Size:            "42",
		Quantity:        1,
		CustomerName:    "Jordan Reyes",
		CustomerAddress: "12 Court St",
	})

	require.NoError(t, err)
	assert.Equal(t, "Air Runner", order.ProductTitle)
	assert.True(t, order.Price.Equal(decimal.NewFromFloat(129.99)))
	mockOrders.AssertExpectations(t)
}

func TestService_Place_UnknownProduct(t *testing.T) {
	service, mockOrders, mockProducts := newTestService()

	mockProducts.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

	_, err := service.Place(context.Background(), &domain.Order{
		UserEmail: "jordan@example.com",
		ProductID: 404,
		Size:      "42",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Place_MissingAddress(t *testing.T) {
	service, mockOrders, mockProducts := newTestService()

	mockProducts.On("GetByID", mock.Anything, int64(1)).Return(&domain.Product{ID: 1, Name: "Air Runner"}, nil)

	_, err := service.Place(context.Background(), &domain.Order{
		UserEmail:    "jordan@example.com",
		ProductID:    1,
		Size:         "42",
		CustomerName: "Jordan Reyes",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Cancel_NotFoundForOtherOwner(t *testing.T) {
	service, mockOrders, _ := newTestService()

	mockOrders.On("UpdateStatus", mock.Anything, int64(5), "mallory@example.com", domain.OrderStatusCancelled).
		Return(domain.ErrNotFound)

	err := service.Cancel(context.Background(), 5, "mallory@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_HasPurchased(t *testing.T) {
	service, mockOrders, _ := newTestService()

	mockOrders.On("HasPurchased", mock.Anything, "jordan@example.com", int64(1)).Return(true, nil)

	ok, err := service.HasPurchased(context.Background(), "jordan@example.com", 1)

	require.NoError(t, err)
	assert.True(t, ok)
}
