package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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

	_ "github.com/streetkicks/storefront/docs"
)

// @title StreetKicks Storefront API
// @version 1.0
// @description Sneaker storefront with a review and reply subsystem, order history, cart and wishlist.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/streetkicks/storefront
// @contact.email support@streetkicks.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name Auth
// @tag.description Registration, login and profile endpoints

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Reviews
// @tag.description Review submission and rating statistics endpoints

// @tag.name Replies
// @tag.description Review reply thread endpoints

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting StreetKicks storefront API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		appLogger.Fatal("Failed to create upload directory", err)
	}

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

	userService := user.NewService(userRepo, tokens, appLogger)
	productService := product.NewService(productRepo, productCache, appLogger)
	orderService := order.NewService(orderRepo, productRepo, appLogger)
	reviewService := review.NewService(reviewRepo, orderService, publisher, appLogger, cfg.Review.StrictSubmit)
	replyService := reply.NewService(replyRepo, reviewRepo, appLogger)
	cartService := cart.NewService(cartRepo, productRepo, appLogger)
	wishlistService := wishlist.NewService(wishlistRepo, productRepo, appLogger)
	contactService := contact.NewService(contactRepo, appLogger)

	authHandler := handler.NewAuthHandler(userService, cfg.Uploads.Dir, appLogger)
	productHandler := handler.NewProductHandler(productService, appLogger)
	reviewHandler := handler.NewReviewHandler(reviewService, appLogger)
	replyHandler := handler.NewReplyHandler(replyService, appLogger)
	orderHandler := handler.NewOrderHandler(orderService, appLogger)
	cartHandler := handler.NewCartHandler(cartService, appLogger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, appLogger)
	contactHandler := handler.NewContactHandler(contactService, appLogger)

	router := httpDelivery.NewRouter(
		authHandler,
		productHandler,
		reviewHandler,
		replyHandler,
		orderHandler,
		cartHandler,
		wishlistHandler,
		contactHandler,
		tokens,
		cfg,
		appLogger,
	)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
