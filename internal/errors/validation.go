package errors

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/quizhub/quiz-service/internal/models"
)

// TimeLimitMessage is shared by the time_limit tag and the question rules.
var TimeLimitMessage = fmt.Sprintf("must be between %d and %d seconds", models.MinTimeLimit, models.MaxTimeLimit)

// ValidationError describes one rejected request or question field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidationErrors is returned whole so clients see every bad field at once.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "invalid input"
	case 1:
		return ve[0].Error()
	}
	fields := make([]string, len(ve))
	for i, e := range ve {
		fields[i] = e.Field
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value, Rule: rule}
}

// ToValidationErrors maps validator tag failures onto ValidationErrors.
// Errors of any other type yield nil.
func ToValidationErrors(err error) ValidationErrors {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return boundMessage("at least", fe)
	case "max":
		return boundMessage("at most", fe)
	case "oneof":
		return oneOf(strings.Fields(fe.Param()))
	case "user_role":
		return oneOf(enumStrings(models.UserRoles))
	case "vote_type":
		return oneOf(enumStrings(models.VoteTypes))
	case "time_limit":
		return TimeLimitMessage
	}
	return fmt.Sprintf("failed the %s check", fe.Tag())
}

// boundMessage words min/max by the kind of field: option and tag lists
// count entries, usernames and passwords count characters.
func boundMessage(bound string, fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must have %s %s entries", bound, fe.Param())
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
	}
	return fmt.Sprintf("must be %s %s", bound, fe.Param())
}

func oneOf(values []string) string {
	return "must be one of: " + strings.Join(values, ", ")
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
