package handler

import (
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/contact"
)

// ContactHandler handles HTTP requests for the contact form
type ContactHandler struct {
	service *contact.Service
	logger  *logger.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service *contact.Service, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  log,
	}
}

// SubmitContactRequest represents the request body for a contact message
type SubmitContactRequest struct {
	Subject     string `json:"subject" validate:"required,min=1,max=255"`
	Message     string `json:"message" validate:"required,min=1"`
	ContactType string `json:"contact_type"`
}

// Submit handles POST /api/v1/contact
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body SubmitContactRequest true "Message details"
// @Success 201 {object} map[string]interface{} "Message received"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req SubmitContactRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg := &domain.ContactMessage{
		UserEmail:   email,
		Subject:     req.Subject,
		Message:     req.Message,
		ContactType: req.ContactType,
	}

	if err := h.service.Submit(r.Context(), msg); err != nil {
		writeError(w, h.logger, err, "Message not found")
		return
	}

	response.Created(w, msg)
}

// List handles GET /api/v1/contact
// @Summary Get the caller's contact messages
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Messages, newest first"
// @Router /contact [get]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	messages, err := h.service.ListForUser(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err, "Messages not found")
		return
	}

	response.Success(w, messages)
}
