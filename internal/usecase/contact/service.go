package contact

import (
	"context"
	"strings"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/pkg/validator"
)

// Service handles contact form submissions
type Service struct {
	repo   domain.ContactRepository
	logger *logger.Logger
}

// NewService creates a new contact service
func NewService(repo domain.ContactRepository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

// Submit stores a support request
func (s *Service) Submit(ctx context.Context, msg *domain.ContactMessage) error {
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.ContactType == "" {
		msg.ContactType = "general"
	}

	if err := validator.Get().Struct(msg); err != nil {
		return domain.NewValidationError(domain.CodeMissingFields, "subject and message are required")
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to store contact message", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"message_id":   msg.ID,
		"contact_type": msg.ContactType,
	}).Info("Contact message received")

	return nil
}

// ListForUser retrieves the user's submitted messages, newest first
func (s *Service) ListForUser(ctx context.Context, email string) ([]*domain.ContactMessage, error) {
	messages, err := s.repo.ListByUser(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list contact messages", err)
		return nil, err
	}
	return messages, nil
}
