package auth

import (
	"errors"
	"fmt"

	"github.com/quizhub/quiz-service/internal/models"
)

var ErrForbidden = errors.New("insufficient role")

type Operation string

const (
	OpQuestionCreate     Operation = "question.create"
	OpQuestionUpdate     Operation = "question.update"
	OpQuestionDelete     Operation = "question.delete"
	OpQuestionApprove    Operation = "question.approve"
	OpQuestionPending    Operation = "question.pending"
	OpQuestionContribute Operation = "question.contribute"
	OpQuestionExport     Operation = "question.export"
	OpQuestionImport     Operation = "question.import"
	OpQuizTake           Operation = "quiz.take"
	OpAttemptSubmit      Operation = "attempt.submit"
	OpAttemptHistory     Operation = "attempt.history"
	OpVoteCast           Operation = "vote.cast"
)

// Policy maps operations to the role they require. Operations with an empty
// role only need an authenticated caller.
type Policy map[Operation]models.UserRole

func DefaultPolicy() Policy {
	return Policy{
		OpQuestionCreate:     models.RoleAdmin,
		OpQuestionUpdate:     models.RoleAdmin,
		OpQuestionDelete:     models.RoleAdmin,
		OpQuestionApprove:    models.RoleAdmin,
		OpQuestionPending:    models.RoleAdmin,
		OpQuestionExport:     models.RoleAdmin,
		OpQuestionImport:     models.RoleAdmin,
		OpQuestionContribute: "",
		OpQuizTake:           "",
		OpAttemptSubmit:      "",
		OpAttemptHistory:     "",
		OpVoteCast:           "",
	}
}

// Authorize rejects the identity unless its role equals the one required by op.
// Unknown operations are denied.
func (p Policy) Authorize(op Operation, id Identity) error {
	required, ok := p[op]
	if !ok {
		return fmt.Errorf("%w: no policy for %s", ErrForbidden, op)
	}
	if required == "" || id.Role == required {
		return nil
	}
	return fmt.Errorf("%w: %s requires %s", ErrForbidden, op, required)
}
