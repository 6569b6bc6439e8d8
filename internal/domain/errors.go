package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotOwner is returned when an actor attempts to mutate a resource they do not own
	ErrNotOwner = errors.New("not the resource owner")

	// ErrAlreadyReviewed is returned by the strict submission mode when a
	// review for the (product, author) pair already exists
	ErrAlreadyReviewed = errors.New("product already reviewed")

	// ErrInvalidCredentials is returned when login fails
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Storage failure taxonomy. Repositories translate engine-specific
// failure codes into these sentinels; raw engine errors never cross the
// repository boundary.
var (
	// ErrSchemaMissing is returned when a referenced table does not exist
	ErrSchemaMissing = errors.New("database schema missing")

	// ErrAccessDenied is returned when the database rejects the credentials
	ErrAccessDenied = errors.New("database access denied")

	// ErrUnavailable is returned when the database cannot be reached or a
	// statement exceeds its timeout
	ErrUnavailable = errors.New("database unavailable")

	// ErrConstraint is returned on unique or foreign key violations
	ErrConstraint = errors.New("constraint violation")
)

// Validation reason codes surfaced to clients alongside a human message.
const (
	CodeMissingFields = "MISSING_FIELDS"
	CodeInvalidRating = "INVALID_RATING"
)

// ValidationError carries a stable machine-readable reason code so
// presentation code can react to specific validation failures. It
// unwraps to ErrInvalidInput for errors.Is checks.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a ValidationError with the given code and message
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// StorageError wraps a database failure that has no specific mapping in
// the taxonomy above, preserving the original error for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
