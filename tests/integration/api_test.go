//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetkicks/storefront/internal/config"
	"github.com/streetkicks/storefront/internal/delivery/events"
	httpDelivery "github.com/streetkicks/storefront/internal/delivery/http"
	"github.com/streetkicks/storefront/internal/delivery/http/handler"
	"github.com/streetkicks/storefront/internal/pkg/cache"
	"github.com/streetkicks/storefront/internal/pkg/database"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/pkg/token"
	cacheRepo "github.com/streetkicks/storefront/internal/repository/cache"
	"github.com/streetkicks/storefront/internal/repository/postgres"
	"github.com/streetkicks/storefront/internal/usecase/cart"
	"github.com/streetkicks/storefront/internal/usecase/contact"
	"github.com/streetkicks/storefront/internal/usecase/order"
	"github.com/streetkicks/storefront/internal/usecase/product"
	"github.com/streetkicks/storefront/internal/usecase/reply"
	"github.com/streetkicks/storefront/internal/usecase/review"
	"github.com/streetkicks/storefront/internal/usecase/user"
	"github.com/streetkicks/storefront/internal/usecase/wishlist"
)

func setupTestServer(t *testing.T) (http.Handler, *sqlx.DB) {
	cfg, err := config.Load()
	require.NoError(t, err)

	log := logger.New(cfg.Env)

	db, err := database.WaitForDB(cfg, 5, 2*time.Second)
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db))

	redisClient, err := cache.WaitForRedis(cfg, 5, 2*time.Second)
	require.NoError(t, err)

	publisher, err := events.NewPublisher(cfg, log)
	require.NoError(t, err)

	gateway := postgres.NewGateway(db, cfg.Database.StatementTimeout)

	userRepo := postgres.NewUserRepository(gateway)
	productRepo := postgres.NewProductRepository(gateway)
	reviewRepo := postgres.NewReviewRepository(gateway)
	replyRepo := postgres.NewReplyRepository(gateway)
	orderRepo := postgres.NewOrderRepository(gateway)
	cartRepo := postgres.NewCartRepository(gateway)
	wishlistRepo := postgres.NewWishlistRepository(gateway)
	contactRepo := postgres.NewContactRepository(gateway)

	productCache := cacheRepo.NewProductCache(
		redisClient,
		cfg.Cache.ProductListTTL,
		cfg.Cache.ProductDetailTTL,
	)

	tokens := token.NewMaker(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	userService := user.NewService(userRepo, tokens, log)
	productService := product.NewService(productRepo, productCache, log)
	orderService := order.NewService(orderRepo, productRepo, log)
	reviewService := review.NewService(reviewRepo, orderService, publisher, log, cfg.Review.StrictSubmit)
	replyService := reply.NewService(replyRepo, reviewRepo, log)
	cartService := cart.NewService(cartRepo, productRepo, log)
	wishlistService := wishlist.NewService(wishlistRepo, productRepo, log)
	contactService := contact.NewService(contactRepo, log)

	router := httpDelivery.NewRouter(
		handler.NewAuthHandler(userService, t.TempDir(), log),
		handler.NewProductHandler(productService, log),
		handler.NewReviewHandler(reviewService, log),
		handler.NewReplyHandler(replyService, log),
		handler.NewOrderHandler(orderService, log),
		handler.NewCartHandler(cartService, log),
		handler.NewWishlistHandler(wishlistService, log),
		handler.NewContactHandler(contactService, log),
		tokens,
		cfg,
		log,
	)

	return router.Setup(), db
}

func registerUser(t *testing.T, server http.Handler, email string) string {
	body := fmt.Sprintf(`{"username": "Test User", "email": %q, "password": "password123"}`, email)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func seedProduct(t *testing.T, db *sqlx.DB, slug string) int64 {
	var id int64
	err := db.Get(&id, `
		INSERT INTO products (slug, name, category, price, image)
		VALUES ($1, $2, 'running', 129.99, '/images/test.jpg')
		RETURNING id
	`, slug, "Integration Test Runner")
	require.NoError(t, err)
	return id
}

func TestReviewLifecycle(t *testing.T) {
	server, db := setupTestServer(t)
	defer db.Close()

	email := fmt.Sprintf("reviewer-%d@example.com", time.Now().UnixNano())
	authToken := registerUser(t, server, email)
	productID := seedProduct(t, db, fmt.Sprintf("test-runner-%d", time.Now().UnixNano()))

	// First submission creates the review.
	body := `{"rating": 5, "title": "Great shoes", "comment": "Comfortable and durable"}`
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/products/%d/reviews", productID), bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+authToken)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// A second submission from the same author updates it in place.
	body = `{"rating": 3, "title": "Revised opinion", "comment": "Sole wore out quickly"}`
	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/products/%d/reviews", productID), bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+authToken)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The collection still holds a single review, and stats reflect the update.
	req = httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/products/%d/reviews", productID), nil)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []struct {
			ID     int64 `json:"id"`
			Rating int   `json:"rating"`
		} `json:"data"`
		Stats struct {
			AverageRating float64 `json:"average_rating"`
			TotalReviews  int     `json:"total_reviews"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Data, 1)
	assert.Equal(t, 3, listResp.Data[0].Rating)
	assert.Equal(t, 3.0, listResp.Stats.AverageRating)
	assert.Equal(t, 1, listResp.Stats.TotalReviews)

	reviewID := listResp.Data[0].ID

	// Reply to the review and read the thread back.
	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/reviews/%d/replies", reviewID),
		bytes.NewBufferString(`{"comment": "Sorry to hear that, contact support for a replacement."}`))
	req.Header.Set("Authorization", "Bearer "+authToken)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/reviews/%d/replies", reviewID), nil)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var threadResp struct {
		Data []struct {
			Comment string `json:"comment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &threadResp))
	require.Len(t, threadResp.Data, 1)

	// Deleting the review removes its replies with it.
	req = httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/reviews/%d", reviewID), nil)
	req.Header.Set("Authorization", "Bearer "+authToken)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/reviews/%d/replies", reviewID), nil)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewStatsEndpoint(t *testing.T) {
	server, db := setupTestServer(t)
	defer db.Close()

	productID := seedProduct(t, db, fmt.Sprintf("stats-runner-%d", time.Now().UnixNano()))

	for i, rating := range []int{5, 5, 2} {
		email := fmt.Sprintf("stats-%d-%d@example.com", time.Now().UnixNano(), i)
		authToken := registerUser(t, server, email)

		body := fmt.Sprintf(`{"rating": %d, "title": "Review %d", "comment": "Comment %d"}`, rating, i, i)
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/api/v1/products/%d/reviews", productID), bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+authToken)

		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/products/%d/reviews/stats", productID), nil)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AverageRating float64     `json:"average_rating"`
			TotalReviews  int         `json:"total_reviews"`
			Distribution  map[int]int `json:"rating_distribution"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4.0, resp.Data.AverageRating)
	assert.Equal(t, 3, resp.Data.TotalReviews)
	assert.Equal(t, 2, resp.Data.Distribution[5])
	assert.Equal(t, 1, resp.Data.Distribution[2])
}

func TestSubmitRequiresAuth(t *testing.T) {
	server, db := setupTestServer(t)
	defer db.Close()

	productID := seedProduct(t, db, fmt.Sprintf("auth-runner-%d", time.Now().UnixNano()))

	body := `{"rating": 5, "title": "Anonymous", "comment": "No token"}`
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/products/%d/reviews", productID), bytes.NewBufferString(body))

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
