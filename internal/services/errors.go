package services

import (
	"errors"
	"fmt"

	"github.com/quizhub/quiz-service/internal/auth"
	apperrors "github.com/quizhub/quiz-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = auth.ErrForbidden
	ErrConflict           = errors.New("resource conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyRequests    = errors.New("too many failed login attempts, try again later")

	ErrQuestionNotFound = errors.New("question not found")

	ErrUsernameTaken    = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrAlreadyUpvoted   = fmt.Errorf("%w: you already upvoted this question", ErrConflict)
	ErrAlreadyDownvoted = fmt.Errorf("%w: you already downvoted this question", ErrConflict)
	ErrVoteFlipConflict = fmt.Errorf("%w: vote was changed concurrently", ErrConflict)
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuestionNotFound)
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsTooManyRequests(err error) bool {
	return errors.Is(err, ErrTooManyRequests)
}
