package validator

import (
	"fmt"
	"strings"

	"github.com/quizhub/quiz-service/internal/errors"
	"github.com/quizhub/quiz-service/internal/models"
)

// QuestionValidator checks a fully assembled question, after defaults and
// partial updates have been merged in.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

func (v *QuestionValidator) Validate(q *models.Question) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(q.Question) == "" {
		errs = append(errs, *NewValidationError("question", "must not be blank", q.Question))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		errs = append(errs, *NewValidationError("correctAnswer", "must not be blank", q.CorrectAnswer))
	}
	if strings.TrimSpace(q.Category) == "" {
		errs = append(errs, *NewValidationError("category", "must not be blank", q.Category))
	}
	if strings.TrimSpace(q.Difficulty) == "" {
		errs = append(errs, *NewValidationError("difficulty", "must not be blank", q.Difficulty))
	}

	switch {
	case len(q.Options) == 0:
		errs = append(errs, *NewValidationError("options", "is required", nil))
	case len(q.Options) > models.MaxOptions:
		errs = append(errs, *NewValidationError("options", fmt.Sprintf("can hold at most %d options", models.MaxOptions), len(q.Options)))
	default:
		for i, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, *NewValidationError(fmt.Sprintf("options[%d]", i), "must not be blank", opt))
			}
		}
	}

	if q.TimeLimit < models.MinTimeLimit || q.TimeLimit > models.MaxTimeLimit {
		errs = append(errs, *NewValidationErrorWithRule("timeLimit", errors.TimeLimitMessage, "time_limit", q.TimeLimit))
	}

	for i, tag := range q.Tags {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, *NewValidationError(fmt.Sprintf("tags[%d]", i), "must not be blank", tag))
		}
	}

	return errs
}
