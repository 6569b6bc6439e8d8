package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/streetkicks/storefront/internal/domain"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/pkg/token"
	"github.com/streetkicks/storefront/internal/pkg/validator"
)

// RegisterInput carries a signup request
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Service handles account registration, login and profile management
type Service struct {
	repo   domain.UserRepository
	tokens *token.Maker
	logger *logger.Logger
}

// NewService creates a new user service
func NewService(repo domain.UserRepository, tokens *token.Maker, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

// Register creates a new account and returns it with a session token
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := validator.Get().Struct(in); err != nil {
		return nil, "", domain.NewValidationError(domain.CodeMissingFields, "username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", err)
		return nil, "", err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConstraint) {
			return nil, "", domain.ErrAlreadyExists
		}
		s.logger.Error("Failed to create user", err)
		return nil, "", err
	}

	signed, err := s.tokens.Create(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to sign session token", err)
		return nil, "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
	}).Info("Account registered")

	return user, signed, nil
}

// Login verifies credentials and returns the account with a session
// token. A missing account and a wrong password are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up user", err)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Create(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to sign session token", err)
		return nil, "", err
	}

	return user, signed, nil
}

// Get retrieves the account for an email
func (s *Service) Get(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to get user", err)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the display name on the account
func (s *Service) UpdateProfile(ctx context.Context, email, username string) error {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > 100 {
		return domain.NewValidationError(domain.CodeMissingFields, "username is required")
	}

	if err := s.repo.UpdateProfile(ctx, email, username); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to update profile", err)
		}
		return err
	}

	return nil
}

// UpdatePhoto stores the uploaded profile photo filename
func (s *Service) UpdatePhoto(ctx context.Context, email, filename string) error {
	if filename == "" {
		return domain.NewValidationError(domain.CodeMissingFields, "photo is required")
	}

	if err := s.repo.UpdatePhoto(ctx, email, filename); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to update photo", err)
		}
		return err
	}

	return nil
}
