package review

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/stats"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// PurchaseChecker reports whether an author has a fulfilled order
// containing the product. Used to stamp verified_purchase at first
// submission; the flag is never re-evaluated afterwards.
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, email string, productID int64) (bool, error)
}

// ReviewEvent represents an event related to a review
type ReviewEvent struct {
	EventType string         `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	ProductID int64          `json:"product_id"`
	Review    *domain.Review `json:"review"`
}

// SubmitInput carries an author's review submission
type SubmitInput struct {
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// Service handles review business logic. Submission is idempotent per
// (product, author): resubmitting replaces the author's earlier review
// in place. The storage unique constraint makes that atomic, so the
// service holds no locks of its own.
type Service struct {
	repo         domain.ReviewRepository
	purchases    PurchaseChecker
	publisher    EventPublisher
	logger       *logger.Logger
	strictSubmit bool
}

// NewService creates a new review service
func NewService(
	repo domain.ReviewRepository,
	purchases PurchaseChecker,
	publisher EventPublisher,
	log *logger.Logger,
	strictSubmit bool,
) *Service {
	return &Service{
		repo:         repo,
		purchases:    purchases,
		publisher:    publisher,
		logger:       log,
		strictSubmit: strictSubmit,
	}
}

// Submit creates the author's review for a product, or updates it in
// place when one already exists. Returns the stored review and whether
// an existing one was replaced. In strict mode a second submission is
// rejected with domain.ErrAlreadyReviewed instead.
func (s *Service) Submit(ctx context.Context, email string, in SubmitInput) (*domain.Review, bool, error) {
	if err := validateSubmission(email, in); err != nil {
		s.logger.Debugf("Review submission rejected: %v", err)
		return nil, false, err
	}

	if s.strictSubmit {
		_, err := s.repo.GetByProductAndAuthor(ctx, in.ProductID, email)
		if err == nil {
			return nil, false, domain.ErrAlreadyReviewed
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to check for existing review", err)
			return nil, false, err
		}
	}

	verified, err := s.purchases.HasPurchased(ctx, email, in.ProductID)
	if err != nil {
		// The purchase check is best effort; an unverifiable purchase
		// must not block the submission.
		s.logger.Warnf("Purchase check failed for %s on product %d: %v", email, in.ProductID, err)
		verified = false
	}

	review := &domain.Review{
		ProductID:        in.ProductID,
		UserEmail:        email,
		Rating:           in.Rating,
		Title:            strings.TrimSpace(in.Title),
		Comment:          strings.TrimSpace(in.Comment),
		VerifiedPurchase: verified,
	}

	isUpdate, err := s.repo.Upsert(ctx, review)
	if err != nil {
		s.logger.Error("Failed to store review", err)
		return nil, false, err
	}

	// A concurrent first submission can slip in between the strict
	// pre-check and the upsert; the constraint turns the loser into an
	// update, which strict mode still reports as a conflict.
	if isUpdate && s.strictSubmit {
		return nil, false, domain.ErrAlreadyReviewed
	}

	eventType := "review.created"
	if isUpdate {
		eventType = "review.updated"
	}
	s.publishEvent(eventType, review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
		"updated":    isUpdate,
	}).Info("Review stored")

	return review, isUpdate, nil
}

// ListForProduct retrieves a product's reviews, newest first, together
// with rating statistics derived from the same rows. Statistics are
// recomputed on every call and never cached.
func (s *Service) ListForProduct(ctx context.Context, productID int64) ([]*domain.Review, *domain.RatingStats, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to list reviews by product", err)
		return nil, nil, err
	}

	computed := stats.Compute(reviews)
	computed.Distribution = stats.Distribution(reviews)

	return reviews, &computed, nil
}

// Stats computes rating statistics for a product as a single grouped
// aggregate, without materializing the review rows.
func (s *Service) Stats(ctx context.Context, productID int64) (*domain.RatingStats, error) {
	st, err := s.repo.StatsByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to compute review stats", err)
		return nil, err
	}
	return st, nil
}

// ListForUser retrieves the author's reviews across all products
func (s *Service) ListForUser(ctx context.Context, email string) ([]*domain.Review, error) {
	reviews, err := s.repo.ListByAuthor(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list reviews by author", err)
		return nil, err
	}
	return reviews, nil
}

// GetForProductAndAuthor retrieves the author's review for a product
func (s *Service) GetForProductAndAuthor(ctx context.Context, productID int64, email string) (*domain.Review, error) {
	review, err := s.repo.GetByProductAndAuthor(ctx, productID, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to get review", err)
		}
		return nil, err
	}
	return review, nil
}

// Delete removes the author's review. Replies attached to it are
// removed with it at the storage layer.
func (s *Service) Delete(ctx context.Context, id int64, email string) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to get review for deletion", err)
		}
		return err
	}

	if review.UserEmail != email {
		return domain.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete review", err)
		return err
	}

	s.publishEvent("review.deleted", review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  id,
		"product_id": review.ProductID,
	}).Info("Review deleted")

	return nil
}

func validateSubmission(email string, in SubmitInput) error {
	if in.ProductID <= 0 || email == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Comment) == "" {
		return domain.NewValidationError(domain.CodeMissingFields, "product, title and comment are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return domain.NewValidationError(domain.CodeInvalidRating, "rating must be between 1 and 5")
	}
	if len(in.Title) > 100 || len(in.Comment) > 1000 {
		return domain.ErrInvalidInput
	}
	return nil
}

// publishEvent publishes a review event (non-blocking)
func (s *Service) publishEvent(eventType string, review *domain.Review) {
	event := ReviewEvent{
		EventType: eventType,
		Timestamp: time.Now(),
		ProductID: review.ProductID,
		Review:    review,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for review %d", review.ID)
		return
	}

	// Publish in background to avoid blocking the request path
	go func() {
		if err := s.publisher.Publish(context.Background(), "reviews.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for review %d", review.ID)
		}
	}()
}
