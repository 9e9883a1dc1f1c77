package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", ErrUsernameTaken)
	assert.True(t, IsConflict(wrapped))

	assert.True(t, IsNotFound(ErrQuestionNotFound))
	assert.True(t, IsValidation(ValidationErrors{{Field: "x", Message: "bad"}}))
	assert.True(t, IsValidation(NewValidationError("x", "bad", nil)))
	assert.True(t, IsTooManyRequests(ErrTooManyRequests))
	assert.True(t, IsInvalidCredentials(ErrInvalidCredentials))
	assert.True(t, IsForbidden(fmt.Errorf("%w: question.import requires admin", auth.ErrForbidden)))
	assert.False(t, IsConflict(ErrInvalidCredentials))

	infra := errors.New("connection reset")
	assert.False(t, IsNotFound(infra))
	assert.False(t, IsValidation(infra))
	assert.False(t, IsConflict(infra))
}
