package handler

import (
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/order"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	service *order.Service
	logger  *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *order.Service, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  log,
	}
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	ProductID       int64  `json:"product_id" validate:"required"`
	Size            string `json:"size" validate:"required"`
	Quantity        int    `json:"quantity"`
	PaymentMethod   string `json:"payment_method"`
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerAddress string `json:"customer_address" validate:"required"`
	CustomerPhone   string `json:"customer_phone"`
}

// Place handles POST /api/v1/orders
// @Summary Place an order
// @Description Create an order for a product. Title, image and price are snapshotted from the catalog at placement time.
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body PlaceOrderRequest true "Order details"
// @Success 201 {object} map[string]interface{} "Order placed"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /orders [post]
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req PlaceOrderRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	placed, err := h.service.Place(r.Context(), &domain.Order{
		UserEmail:       email,
		ProductID:       req.ProductID,
		Size:            req.Size,
		Quantity:        req.Quantity,
		PaymentMethod:   req.PaymentMethod,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
	})
	if err != nil {
		writeError(w, h.logger, err, "Product not found")
		return
	}

	response.Created(w, placed)
}

// List handles GET /api/v1/orders
// @Summary Get the caller's orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Order history, newest first"
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	orders, err := h.service.ListForUser(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err, "Orders not found")
		return
	}

	response.Success(w, orders)
}

// Cancel handles POST /api/v1/orders/{id}/cancel
// @Summary Cancel an order
// @Description Mark the caller's order as cancelled.
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 204 "Order cancelled"
// @Failure 404 {object} map[string]string "Order not found"
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	if err := h.service.Cancel(r.Context(), id, email); err != nil {
		writeError(w, h.logger, err, "Order not found")
		return
	}

	response.NoContent(w)
}
