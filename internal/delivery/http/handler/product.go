package handler

import (
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/product"
)

// ProductHandler handles HTTP requests for the catalog
type ProductHandler struct {
	service *product.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *product.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// List handles GET /api/v1/products
// @Summary List products
// @Description Get the catalog, optionally filtered by category. Results are cached.
// @Tags Products
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} map[string]interface{} "Product list"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := request.GetStringQuery(r, "category", "")

	products, err := h.service.List(r.Context(), category)
	if err != nil {
		writeError(w, h.logger, err, "Products not found")
		return
	}

	response.Success(w, products)
}

// GetBySlug handles GET /api/v1/products/{slug}
// @Summary Get a product
// @Description Get a single product by its URL slug. Results are cached.
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} map[string]interface{} "Product"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{slug} [get]
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug, err := request.GetStringParam(r, "slug")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product slug")
		return
	}

	p, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, h.logger, err, "Product not found")
		return
	}

	response.Success(w, p)
}

// ListByCategory handles GET /api/v1/categories/{slug}/products
// @Summary List products in a category
// @Tags Products
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} map[string]interface{} "Product list"
// @Router /categories/{slug}/products [get]
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := request.GetStringParam(r, "slug")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category slug")
		return
	}

	products, err := h.service.List(r.Context(), category)
	if err != nil {
		writeError(w, h.logger, err, "Products not found")
		return
	}

	response.Success(w, products)
}
