package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/pkg/token"
	"github.com/streetkicks/storefront/internal/usecase/review"
)

// MockReviewRepository is a mock implementation of domain.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Upsert(ctx context.Context, r *domain.Review) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByProductAndAuthor(ctx context.Context, productID int64, email string) (*domain.Review, error) {
	args := m.Called(ctx, productID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByAuthor(ctx context.Context, email string) ([]*domain.Review, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) StatsByProduct(ctx context.Context, productID int64) (*domain.RatingStats, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingStats), args.Error(1)
}

// MockPurchaseChecker is a mock implementation of review.PurchaseChecker
type MockPurchaseChecker struct {
	mock.Mock
}

func (m *MockPurchaseChecker) HasPurchased(ctx context.Context, email string, productID int64) (bool, error) {
	args := m.Called(ctx, email, productID)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of review.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type reviewFixture struct {
	handler   *ReviewHandler
	repo      *MockReviewRepository
	purchases *MockPurchaseChecker
	router    chi.Router
	authToken string
}

func newReviewFixture(t *testing.T, strict bool) *reviewFixture {
	t.Helper()

	mockRepo := new(MockReviewRepository)
	mockPurchases := new(MockPurchaseChecker)
	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("Publish", mock.Anything, "reviews.events", mock.Anything).Return(nil).Maybe()

	log := logger.New("test")
	service := review.NewService(mockRepo, mockPurchases, mockPublisher, log, strict)
	h := NewReviewHandler(service, log)

	tokens := token.NewMaker("test-secret", time.Hour)
	signed, err := tokens.Create(1, "jordan@example.com")
	require.NoError(t, err)

	auth := middleware.Auth(tokens)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products/{id:[0-9]+}/reviews", func(r chi.Router) {
			r.Get("/", h.ListByProduct)
			r.Get("/stats", h.Stats)
			r.With(auth).Post("/", h.Submit)
		})
		r.With(auth).Get("/reviews/mine", h.ListMine)
		r.With(auth).Delete("/reviews/{id}", h.Delete)
	})

	return &reviewFixture{
		handler:   h,
		repo:      mockRepo,
		purchases: mockPurchases,
		router:    r,
		authToken: signed,
	}
}

func (f *reviewFixture) do(req *http.Request, authed bool) *httptest.ResponseRecorder {
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.authToken)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestReviewHandler_Submit_Created(t *testing.T) {
	f := newReviewFixture(t, false)

	f.purchases.On("HasPurchased", mock.Anything, "jordan@example.com", int64(1)).Return(true, nil)
	f.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.ProductID == 1 && r.UserEmail == "jordan@example.com" && r.Rating == 5
	})).Return(false, nil)

	body, _ := json.Marshal(SubmitReviewRequest{Rating: 5, Title: "Great kicks", Comment: "Love them"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := f.do(req, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.repo.AssertExpectations(t)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Contains(t, resp, "data")
}

func TestReviewHandler_Submit_ResubmissionReturns200(t *testing.T) {
	f := newReviewFixture(t, false)

	f.purchases.On("HasPurchased", mock.Anything, "jordan@example.com", int64(1)).Return(false, nil)
	f.repo.On("Upsert", mock.Anything, mock.Anything).Return(true, nil)

	body, _ := json.Marshal(SubmitReviewRequest{Rating: 3, Title: "Revised", Comment: "Sole wore out"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", bytes.NewReader(body))

	w := f.do(req, true)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewHandler_Submit_Unauthorized(t *testing.T) {
	f := newReviewFixture(t, false)

	body, _ := json.Marshal(SubmitReviewRequest{Rating: 5, Title: "t", Comment: "c"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", bytes.NewReader(body))

	w := f.do(req, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestReviewHandler_Submit_InvalidRatingCarriesCode(t *testing.T) {
	f := newReviewFixture(t, false)

	body, _ := json.Marshal(SubmitReviewRequest{Rating: 9, Title: "Too good", Comment: "Off the scale"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", bytes.NewReader(body))

	w := f.do(req, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, domain.CodeInvalidRating, resp["code"])
}

func TestReviewHandler_Submit_InvalidJSON(t *testing.T) {
	f := newReviewFixture(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", bytes.NewReader([]byte("not json")))

	w := f.do(req, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_Submit_StrictConflict(t *testing.T) {
	f := newReviewFixture(t, true)

	existing := &domain.Review{ID: 10, ProductID: 1, UserEmail: "jordan@example.com"}
	f.repo.On("GetByProductAndAuthor", mock.Anything, int64(1), "jordan@example.com").Return(existing, nil)

	body, _ := json.Marshal(SubmitReviewRequest{Rating: 4, Title: "Again", Comment: "Second try"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/reviews", bytes.NewReader(body))

	w := f.do(req, true)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewHandler_Submit_MissingProduct(t *testing.T) {
	f := newReviewFixture(t, false)

	f.purchases.On("HasPurchased", mock.Anything, "jordan@example.com", int64(404)).Return(false, nil)
	f.repo.On("Upsert", mock.Anything, mock.Anything).Return(false, domain.ErrNotFound)

	body, _ := json.Marshal(SubmitReviewRequest{Rating: 4, Title: "Ghost", Comment: "Which shoe?"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/404/reviews", bytes.NewReader(body))

	w := f.do(req, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_ListByProduct_WithStats(t *testing.T) {
	f := newReviewFixture(t, false)

	reviews := []*domain.Review{
		{ID: 1, ProductID: 1, Rating: 5},
		{ID: 2, ProductID: 1, Rating: 3},
	}
	f.repo.On("ListByProduct", mock.Anything, int64(1)).Return(reviews, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1/reviews", nil)

	w := f.do(req, false)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []json.RawMessage `json:"data"`
		Stats struct {
			AverageRating float64 `json:"average_rating"`
			TotalReviews  int     `json:"total_reviews"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 4.0, resp.Stats.AverageRating)
	assert.Equal(t, 2, resp.Stats.TotalReviews)
}

func TestReviewHandler_ListByProduct_Unavailable(t *testing.T) {
	f := newReviewFixture(t, false)

	f.repo.On("ListByProduct", mock.Anything, int64(1)).
		Return(nil, fmt.Errorf("review.list_by_product: %w", domain.ErrUnavailable))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1/reviews", nil)

	w := f.do(req, false)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReviewHandler_Stats(t *testing.T) {
	f := newReviewFixture(t, false)

	f.repo.On("StatsByProduct", mock.Anything, int64(1)).Return(&domain.RatingStats{
		AverageRating: 4.2,
		TotalReviews:  12,
		Distribution:  map[int]int{1: 0, 2: 1, 3: 1, 4: 4, 5: 6},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1/reviews/stats", nil)

	w := f.do(req, false)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewHandler_Delete_NotOwner(t *testing.T) {
	f := newReviewFixture(t, false)

	existing := &domain.Review{ID: 10, UserEmail: "amina@example.com"}
	f.repo.On("GetByID", mock.Anything, int64(10)).Return(existing, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/10", nil)

	w := f.do(req, true)

	assert.Equal(t, http.StatusForbidden, w.Code)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReviewHandler_Delete_Success(t *testing.T) {
	f := newReviewFixture(t, false)

	existing := &domain.Review{ID: 10, ProductID: 1, UserEmail: "jordan@example.com"}
	f.repo.On("GetByID", mock.Anything, int64(10)).Return(existing, nil)
	f.repo.On("Delete", mock.Anything, int64(10)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/10", nil)

	w := f.do(req, true)

	assert.Equal(t, http.StatusNoContent, w.Code)
	f.repo.AssertExpectations(t)
}

func TestReviewHandler_ListMine(t *testing.T) {
	f := newReviewFixture(t, false)

	f.repo.On("ListByAuthor", mock.Anything, "jordan@example.com").Return([]*domain.Review{
		{ID: 1, ProductID: 1, UserEmail: "jordan@example.com", ProductName: "Air Runner", ProductSlug: "air-runner"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/mine", nil)

	w := f.do(req, true)

	assert.Equal(t, http.StatusOK, w.Code)
}
