package handler

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/streetkicks/storefront/internal/usecase/reply"
)

// MockReplyRepository is a mock implementation of domain.ReplyRepository
type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, r *domain.Reply) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 1
		r.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockReplyRepository) GetByID(ctx context.Context, id int64) (*domain.Reply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reply), args.Error(1)
}

func (m *MockReplyRepository) ListByReview(ctx context.Context, reviewID int64) ([]*domain.Reply, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reply), args.Error(1)
}

func (m *MockReplyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReplyRepository) CountByReview(ctx context.Context, reviewID int64) (int, error) {
	args := m.Called(ctx, reviewID)
	return args.Int(0), args.Error(1)
}

type replyFixture struct {
	replies   *MockReplyRepository
	reviews   *MockReviewRepository
	router    chi.Router
	authToken string
}

func newReplyFixture(t *testing.T) *replyFixture {
	t.Helper()

	mockReplies := new(MockReplyRepository)
	mockReviews := new(MockReviewRepository)

	log := logger.New("test")
	service := reply.NewService(mockReplies, mockReviews, log)
	h := NewReplyHandler(service, log)

	tokens := token.NewMaker("test-secret", time.Hour)
	signed, err := tokens.Create(1, "jordan@example.com")
	require.NoError(t, err)

	auth := middleware.Auth(tokens)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reviews/{id}/replies", func(r chi.Router) {
			r.Get("/", h.List)
			r.With(auth).Post("/", h.Add)
		})
		r.With(auth).Delete("/replies/{id}", h.Delete)
	})

	return &replyFixture{
		replies:   mockReplies,
		reviews:   mockReviews,
		router:    r,
		authToken: signed,
	}
}

func (f *replyFixture) do(req *http.Request, authed bool) *httptest.ResponseRecorder {
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.authToken)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestReplyHandler_Add_Created(t *testing.T) {
	f := newReplyFixture(t)

	f.replies.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reply) bool {
		return r.ReviewID == 10 && r.UserEmail == "jordan@example.com" && r.Comment == "Thanks for the feedback"
	})).Return(nil)

	body, _ := json.Marshal(AddReplyRequest{Comment: "Thanks for the feedback"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/10/replies", bytes.NewReader(body))

	w := f.do(req, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.replies.AssertExpectations(t)
}

func TestReplyHandler_Add_ReviewGone(t *testing.T) {
	f := newReplyFixture(t)

	f.replies.On("Create", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	body, _ := json.Marshal(AddReplyRequest{Comment: "Anyone there?"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/404/replies", bytes.NewReader(body))

	w := f.do(req, true)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Review not found", resp["error"])
}

func TestReplyHandler_Add_EmptyComment(t *testing.T) {
	f := newReplyFixture(t)

	body, _ := json.Marshal(AddReplyRequest{Comment: "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/10/replies", bytes.NewReader(body))

	w := f.do(req, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.replies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReplyHandler_Add_Unauthorized(t *testing.T) {
	f := newReplyFixture(t)

	body, _ := json.Marshal(AddReplyRequest{Comment: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/10/replies", bytes.NewReader(body))

	w := f.do(req, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReplyHandler_List_Thread(t *testing.T) {
	f := newReplyFixture(t)

	f.reviews.On("GetByID", mock.Anything, int64(10)).Return(&domain.Review{ID: 10}, nil)
	f.replies.On("ListByReview", mock.Anything, int64(10)).Return([]*domain.Reply{
		{ID: 1, ReviewID: 10, Comment: "first"},
		{ID: 2, ReviewID: 10, Comment: "second"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/10/replies", nil)

	w := f.do(req, false)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestReplyHandler_List_ReviewNotFound(t *testing.T) {
	f := newReplyFixture(t)

	f.reviews.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/404/replies", nil)

	w := f.do(req, false)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplyHandler_List_EmptyThreadIsOK(t *testing.T) {
	f := newReplyFixture(t)

	f.reviews.On("GetByID", mock.Anything, int64(10)).Return(&domain.Review{ID: 10}, nil)
	f.replies.On("ListByReview", mock.Anything, int64(10)).Return([]*domain.Reply{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/10/replies", nil)

	w := f.do(req, false)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReplyHandler_Delete_NotOwner(t *testing.T) {
	f := newReplyFixture(t)

	f.replies.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reply{ID: 5, UserEmail: "amina@example.com"}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/replies/5", nil)

	w := f.do(req, true)

	assert.Equal(t, http.StatusForbidden, w.Code)
	f.replies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
