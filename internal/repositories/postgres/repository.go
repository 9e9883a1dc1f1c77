package postgres

import (
	"errors"

	"github.com/quizhub/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	user     repositories.UserRepository
	question repositories.QuestionRepository
	vote     repositories.VoteRepository
	attempt  repositories.AttemptRepository
}

// NewRepository wires every store against the same gorm handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		user:     NewUserPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		vote:     NewVotePostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
	}
}

func (r *repository) User() repositories.UserRepository         { return r.user }
func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Vote() repositories.VoteRepository         { return r.vote }
func (r *repository) Attempt() repositories.AttemptRepository   { return r.attempt }

// translateError maps gorm sentinel errors onto the repository ones. The gorm
// handle must be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	default:
		return err
	}
}
