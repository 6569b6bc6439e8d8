package handler

import (
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/reply"
)

// ReplyHandler handles HTTP requests for review replies
type ReplyHandler struct {
	service *reply.Service
	logger  *logger.Logger
}

// NewReplyHandler creates a new reply handler
func NewReplyHandler(service *reply.Service, log *logger.Logger) *ReplyHandler {
	return &ReplyHandler{
		service: service,
		logger:  log,
	}
}

// AddReplyRequest represents the request body for adding a reply
type AddReplyRequest struct {
	Comment string `json:"comment" validate:"required,min=1"`
}

// Add handles POST /api/v1/reviews/{id}/replies
// @Summary Reply to a review
// @Description Attach a reply to a review's thread.
// @Tags Replies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param reply body AddReplyRequest true "Reply details"
// @Success 201 {object} map[string]interface{} "Reply created"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Review not found"
// @Router /reviews/{id}/replies [post]
func (h *ReplyHandler) Add(w http.ResponseWriter, r *http.Request) {
	reviewID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req AddReplyRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Add(r.Context(), reviewID, email, req.Comment)
	if err != nil {
		writeError(w, h.logger, err, "Review not found")
		return
	}

	response.Created(w, created)
}

// List handles GET /api/v1/reviews/{id}/replies
// @Summary Get the reply thread for a review
// @Description Get all replies for a review, oldest first. A 404 means the review does not exist; an empty thread is a 200.
// @Tags Replies
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{} "Reply thread"
// @Failure 404 {object} map[string]string "Review not found"
// @Router /reviews/{id}/replies [get]
func (h *ReplyHandler) List(w http.ResponseWriter, r *http.Request) {
	reviewID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	replies, err := h.service.List(r.Context(), reviewID)
	if err != nil {
		writeError(w, h.logger, err, "Review not found")
		return
	}

	response.Success(w, replies)
}

// Count handles GET /api/v1/reviews/{id}/replies/count
// @Summary Count replies for a review
// @Tags Replies
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{} "Reply count"
// @Router /reviews/{id}/replies/count [get]
func (h *ReplyHandler) Count(w http.ResponseWriter, r *http.Request) {
	reviewID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	count, err := h.service.Count(r.Context(), reviewID)
	if err != nil {
		writeError(w, h.logger, err, "Review not found")
		return
	}

	response.Success(w, map[string]int{"count": count})
}

// Delete handles DELETE /api/v1/replies/{id}
// @Summary Delete a reply
// @Description Delete the caller's reply.
// @Tags Replies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reply ID"
// @Success 204 "Reply deleted"
// @Failure 403 {object} map[string]string "Not the reply author"
// @Failure 404 {object} map[string]string "Reply not found"
// @Router /replies/{id} [delete]
func (h *ReplyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid reply ID")
		return
	}

	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	if err := h.service.Delete(r.Context(), id, email); err != nil {
		writeError(w, h.logger, err, "Reply not found")
		return
	}

	response.NoContent(w)
}
