package handler

import (
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/review"
)

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	service *review.Service
	logger  *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *review.Service, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  log,
	}
}

// SubmitReviewRequest represents the request body for submitting a review
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,min=1,max=100"`
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}

// Submit handles POST /api/v1/products/{id}/reviews
// @Summary Submit a review for a product
// @Description Create the caller's review for a product, or replace an earlier one. Publishes an event that refreshes the product's rating.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param review body SubmitReviewRequest true "Review details"
// @Success 200 {object} map[string]interface{} "Existing review replaced"
// @Success 201 {object} map[string]interface{} "Review created"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Already reviewed (strict mode)"
// @Router /products/{id}/reviews [post]
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req SubmitReviewRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stored, isUpdate, err := h.service.Submit(r.Context(), email, review.SubmitInput{
		ProductID: productID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(w, h.logger, err, "Product not found")
		return
	}

	if isUpdate {
		response.Success(w, stored)
		return
	}
	response.Created(w, stored)
}

// ListByProduct handles GET /api/v1/products/{id}/reviews
// @Summary Get reviews for a product
// @Description Get all reviews for a product, newest first, with rating statistics derived from the same rows.
// @Tags Reviews
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Reviews and statistics"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 503 {object} map[string]string "Data temporarily unavailable"
// @Router /products/{id}/reviews [get]
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	reviews, stats, err := h.service.ListForProduct(r.Context(), productID)
	if err != nil {
		writeError(w, h.logger, err, "Product not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    reviews,
		"stats":   stats,
	})
}

// Stats handles GET /api/v1/products/{id}/reviews/stats
// @Summary Get rating statistics for a product
// @Description Compute average rating, review count and per-star distribution as a single aggregate.
// @Tags Reviews
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Rating statistics"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Router /products/{id}/reviews/stats [get]
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	stats, err := h.service.Stats(r.Context(), productID)
	if err != nil {
		writeError(w, h.logger, err, "Product not found")
		return
	}

	response.Success(w, stats)
}

// ListMine handles GET /api/v1/reviews/mine
// @Summary Get the caller's reviews
// @Description Get all reviews written by the authenticated user, newest first, with product name and slug resolved.
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "The caller's reviews"
// @Router /reviews/mine [get]
func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	reviews, err := h.service.ListForUser(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err, "Reviews not found")
		return
	}

	response.Success(w, reviews)
}

// Delete handles DELETE /api/v1/reviews/{id}
// @Summary Delete a review
// @Description Delete the caller's review. Replies attached to it are removed with it.
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 204 "Review deleted"
// @Failure 403 {object} map[string]string "Not the review author"
// @Failure 404 {object} map[string]string "Review not found"
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	if err := h.service.Delete(r.Context(), id, email); err != nil {
		writeError(w, h.logger, err, "Review not found")
		return
	}

	response.NoContent(w)
}
