package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/streetkicks/storefront/internal/config"
	"github.com/streetkicks/storefront/internal/delivery/http/handler"
	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/pkg/token"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	authHandler     *handler.AuthHandler
	productHandler  *handler.ProductHandler
	reviewHandler   *handler.ReviewHandler
	replyHandler    *handler.ReplyHandler
	orderHandler    *handler.OrderHandler
	cartHandler     *handler.CartHandler
	wishlistHandler *handler.WishlistHandler
	contactHandler  *handler.ContactHandler
	tokens          *token.Maker
	logger          *logger.Logger
	cfg             *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	reviewHandler *handler.ReviewHandler,
	replyHandler *handler.ReplyHandler,
	orderHandler *handler.OrderHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	contactHandler *handler.ContactHandler,
	tokens *token.Maker,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		authHandler:     authHandler,
		productHandler:  productHandler,
		reviewHandler:   reviewHandler,
		replyHandler:    replyHandler,
		orderHandler:    orderHandler,
		cartHandler:     cartHandler,
		wishlistHandler: wishlistHandler,
		contactHandler:  contactHandler,
		tokens:          tokens,
		logger:          log,
		cfg:             cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	auth := middleware.Auth(rt.tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/profile", rt.authHandler.Profile)
				r.Put("/profile", rt.authHandler.UpdateProfile)
				r.Post("/photo", rt.authHandler.UploadPhoto)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", rt.productHandler.List)

			// Review collections hang off the numeric product id; the
			// catalog detail route matches everything else as a slug.
			r.Route("/{id:[0-9]+}/reviews", func(r chi.Router) {
				r.Get("/", rt.reviewHandler.ListByProduct)
				r.Get("/stats", rt.reviewHandler.Stats)
				r.With(auth).Post("/", rt.reviewHandler.Submit)
			})
			r.Get("/{slug}", rt.productHandler.GetBySlug)
		})

		r.Get("/categories/{slug}/products", rt.productHandler.ListByCategory)

		r.Route("/reviews", func(r chi.Router) {
			r.With(auth).Get("/mine", rt.reviewHandler.ListMine)
			r.With(auth).Delete("/{id}", rt.reviewHandler.Delete)
			r.Route("/{id}/replies", func(r chi.Router) {
				r.Get("/", rt.replyHandler.List)
				r.Get("/count", rt.replyHandler.Count)
				r.With(auth).Post("/", rt.replyHandler.Add)
			})
		})

		r.With(auth).Delete("/replies/{id}", rt.replyHandler.Delete)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", rt.orderHandler.Place)
				r.Get("/", rt.orderHandler.List)
				r.Post("/{id}/cancel", rt.orderHandler.Cancel)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Post("/", rt.cartHandler.Add)
				r.Get("/", rt.cartHandler.List)
				r.Put("/{id}", rt.cartHandler.UpdateQuantity)
				r.Delete("/{id}", rt.cartHandler.Remove)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Post("/", rt.wishlistHandler.Add)
				r.Get("/", rt.wishlistHandler.List)
				r.Get("/count", rt.wishlistHandler.Count)
				r.Delete("/{productId}", rt.wishlistHandler.Remove)
			})

			r.Route("/contact", func(r chi.Router) {
				r.Post("/", rt.contactHandler.Submit)
				r.Get("/", rt.contactHandler.List)
			})
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
