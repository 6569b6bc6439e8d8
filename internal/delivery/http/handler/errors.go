package handler

import (
	"errors"
	"net/http"

	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
)

// writeError maps service errors onto HTTP responses. Validation
// failures carry their reason code; storage failures are logged with
// full detail but reach the client as a generic message.
func writeError(w http.ResponseWriter, log *logger.Logger, err error, notFoundMessage string) {
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		response.ErrorCode(w, http.StatusBadRequest, vErr.Code, vErr.Message)
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, domain.ErrNotOwner):
		response.Error(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, domain.ErrAlreadyReviewed):
		response.Error(w, http.StatusConflict, "You have already reviewed this product")
	case errors.Is(err, domain.ErrAlreadyExists):
		response.Error(w, http.StatusConflict, "Already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrSchemaMissing),
		errors.Is(err, domain.ErrAccessDenied):
		log.Error("Storage unavailable", err)
		response.Error(w, http.StatusServiceUnavailable, "Data temporarily unavailable")
	default:
		log.Error("Internal error in handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
