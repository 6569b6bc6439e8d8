package reply

import (
	"context"
	"errors"
	"strings"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
)

// Service handles reply threads attached to reviews
type Service struct {
	replies domain.ReplyRepository
	reviews domain.ReviewRepository
	logger  *logger.Logger
}

// NewService creates a new reply service
func NewService(replies domain.ReplyRepository, reviews domain.ReviewRepository, log *logger.Logger) *Service {
	return &Service{
		replies: replies,
		reviews: reviews,
		logger:  log,
	}
}

// Add attaches a reply to a review. The review must exist; the storage
// foreign key backs the check, so a review deleted mid-flight still
// yields domain.ErrNotFound rather than an orphaned reply.
func (s *Service) Add(ctx context.Context, reviewID int64, email, comment string) (*domain.Reply, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" || email == "" {
		return nil, domain.NewValidationError(domain.CodeMissingFields, "reply comment is required")
	}

	reply := &domain.Reply{
		ReviewID:  reviewID,
		UserEmail: email,
		Comment:   comment,
	}

	if err := s.replies.Create(ctx, reply); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to create reply", err)
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"reply_id":  reply.ID,
		"review_id": reviewID,
	}).Info("Reply added")

	return reply, nil
}

// List retrieves the reply thread for a review, oldest first. Listing
// against a review that does not exist is an error, not an empty
// thread, so clients can distinguish "no replies yet" from "review
// gone".
func (s *Service) List(ctx context.Context, reviewID int64) ([]*domain.Reply, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to check review for reply listing", err)
		}
		return nil, err
	}

	replies, err := s.replies.ListByReview(ctx, reviewID)
	if err != nil {
		s.logger.Error("Failed to list replies", err)
		return nil, err
	}

	return replies, nil
}

// Count returns the number of replies in a review's thread
func (s *Service) Count(ctx context.Context, reviewID int64) (int, error) {
	count, err := s.replies.CountByReview(ctx, reviewID)
	if err != nil {
		s.logger.Error("Failed to count replies", err)
		return 0, err
	}
	return count, nil
}

// Delete removes the author's reply
func (s *Service) Delete(ctx context.Context, id int64, email string) error {
	reply, err := s.replies.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to get reply for deletion", err)
		}
		return err
	}

	if reply.UserEmail != email {
		return domain.ErrNotOwner
	}

	if err := s.replies.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete reply", err)
		return err
	}

	return nil
}
