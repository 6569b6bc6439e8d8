package handler

import (
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/cart"
)

// CartHandler handles HTTP requests for the shopping cart
type CartHandler struct {
	service *cart.Service
	logger  *logger.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *cart.Service, log *logger.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  log,
	}
}

// AddCartItemRequest represents the request body for adding a cart item
type AddCartItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents the request body for changing a quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Add handles POST /api/v1/cart
// @Summary Add a product to the cart
// @Description Add a product and size to the caller's cart. Re-adding bumps the quantity.
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body AddCartItemRequest true "Cart item"
// @Success 201 {object} map[string]interface{} "Item added"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /cart [post]
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req AddCartItemRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := &domain.CartItem{
		UserEmail: email,
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}

	if err := h.service.Add(r.Context(), item); err != nil {
		writeError(w, h.logger, err, "Product not found")
		return
	}

	response.Created(w, item)
}

// List handles GET /api/v1/cart
// @Summary Get the caller's cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Cart contents"
// @Router /cart [get]
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	items, err := h.service.List(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err, "Cart not found")
		return
	}

	response.Success(w, items)
}

// UpdateQuantity handles PUT /api/v1/cart/{id}
// @Summary Change a cart item quantity
// @Description Set the quantity of a cart row. Zero removes the row.
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cart item ID"
// @Param item body UpdateCartItemRequest true "New quantity"
// @Success 204 "Quantity updated"
// @Failure 404 {object} map[string]string "Cart item not found"
// @Router /cart/{id} [put]
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req UpdateCartItemRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), id, email, req.Quantity); err != nil {
		writeError(w, h.logger, err, "Cart item not found")
		return
	}

	response.NoContent(w)
}

// Remove handles DELETE /api/v1/cart/{id}
// @Summary Remove a cart item
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cart item ID"
// @Success 204 "Item removed"
// @Failure 404 {object} map[string]string "Cart item not found"
// @Router /cart/{id} [delete]
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	if err := h.service.Remove(r.Context(), id, email); err != nil {
		writeError(w, h.logger, err, "Cart item not found")
		return
	}

	response.NoContent(w)
}
