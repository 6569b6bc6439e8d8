package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
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

// MockCatalog is a mock implementation of Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetList(ctx context.Context, category string) ([]*domain.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockCatalog) SetList(ctx context.Context, category string, products []*domain.Product) error {
	args := m.Called(ctx, category, products)
	return args.Error(0)
}

func (m *MockCatalog) GetDetail(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalog) SetDetail(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func newTestService() (*Service, *MockProductRepository, *MockCatalog) {
	mockRepo := new(MockProductRepository)
	mockCache := new(MockCatalog)
	log := logger.New("test")
	return NewService(mockRepo, mockCache, log), mockRepo, mockCache
}

func TestService_List_CacheHit(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	cached := []*domain.Product{{ID: 1, Slug: "air-runner", Name: "Air Runner"}}
	mockCache.On("GetList", mock.Anything, "").Return(cached, nil)

	products, err := service.List(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, products, 1)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestService_List_CacheMissFallsThrough(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	fromDB := []*domain.Product{{ID: 1, Slug: "air-runner"}, {ID: 2, Slug: "court-classic"}}
	mockCache.On("GetList", mock.Anything, "running").Return(nil, domain.ErrNotFound)
	mockRepo.On("ListByCategory", mock.Anything, "running").Return(fromDB, nil)
	mockCache.On("SetList", mock.Anything, "running", fromDB).Return(nil)

	products, err := service.List(context.Background(), "running")

	require.NoError(t, err)
	assert.Len(t, products, 2)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_List_CacheDownIsAMiss(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	fromDB := []*domain.Product{{ID: 1}}
	mockCache.On("GetList", mock.Anything, "").Return(nil, errors.New("redis: connection refused"))
	mockRepo.On("List", mock.Anything).Return(fromDB, nil)
	mockCache.On("SetList", mock.Anything, "", fromDB).Return(errors.New("redis: connection refused"))

	products, err := service.List(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestService_GetBySlug_NotFound(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	mockCache.On("GetDetail", mock.Anything, "ghost-shoe").Return(nil, domain.ErrNotFound)
	mockRepo.On("GetBySlug", mock.Anything, "ghost-shoe").Return(nil, domain.ErrNotFound)

	_, err := service.GetBySlug(context.Background(), "ghost-shoe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCache.AssertNotCalled(t, "SetDetail", mock.Anything, mock.Anything)
}

func TestService_GetBySlug_PopulatesCache(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	product := &domain.Product{ID: 1, Slug: "air-runner", Name: "Air Runner"}
	mockCache.On("GetDetail", mock.Anything, "air-runner").Return(nil, domain.ErrNotFound)
	mockRepo.On("GetBySlug", mock.Anything, "air-runner").Return(product, nil)
	mockCache.On("SetDetail", mock.Anything, product).Return(nil)

	got, err := service.GetBySlug(context.Background(), "air-runner")

	require.NoError(t, err)
	assert.Equal(t, "Air Runner", got.Name)
	mockCache.AssertExpectations(t)
}
