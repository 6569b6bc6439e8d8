package handler

import (
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/wishlist"
)

// WishlistHandler handles HTTP requests for the wishlist
type WishlistHandler struct {
	service *wishlist.Service
	logger  *logger.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(service *wishlist.Service, log *logger.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  log,
	}
}

// AddWishlistItemRequest represents the request body for adding a wishlist item
type AddWishlistItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

// Add handles POST /api/v1/wishlist
// @Summary Add a product to the wishlist
// @Description Put a product on the caller's wishlist. Re-adding an existing product is a 200, not an error.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body AddWishlistItemRequest true "Wishlist item"
// @Success 200 {object} map[string]interface{} "Already on the wishlist"
// @Success 201 {object} map[string]interface{} "Item added"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /wishlist [post]
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req AddWishlistItemRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	alreadyPresent, err := h.service.Add(r.Context(), email, req.ProductID)
	if err != nil {
		writeError(w, h.logger, err, "Product not found")
		return
	}

	if alreadyPresent {
		response.Success(w, map[string]interface{}{"product_id": req.ProductID, "already_present": true})
		return
	}
	response.Created(w, map[string]interface{}{"product_id": req.ProductID})
}

// List handles GET /api/v1/wishlist
// @Summary Get the caller's wishlist
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Wishlist contents"
// @Router /wishlist [get]
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	items, err := h.service.List(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err, "Wishlist not found")
		return
	}

	response.Success(w, items)
}

// Count handles GET /api/v1/wishlist/count
// @Summary Count the caller's wishlist items
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Item count"
// @Router /wishlist/count [get]
func (h *WishlistHandler) Count(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	count, err := h.service.Count(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err, "Wishlist not found")
		return
	}

	response.Success(w, map[string]int{"count": count})
}

// Remove handles DELETE /api/v1/wishlist/{productId}
// @Summary Remove a product from the wishlist
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 204 "Item removed"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /wishlist/{productId} [delete]
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetInt64Param(r, "productId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	if err := h.service.Remove(r.Context(), email, productID); err != nil {
		writeError(w, h.logger, err, "Wishlist item not found")
		return
	}

	response.NoContent(w)
}
