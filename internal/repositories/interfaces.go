package repositories

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// Repository groups the stores so services can take a single dependency.
type Repository interface {
	User() UserRepository
	Question() QuestionRepository
	Vote() VoteRepository
	Attempt() AttemptRepository
}

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	Tags         []string `json:"tags"` // any-of
	OnlyApproved bool     `json:"only_approved"`
	OnlyPending  bool     `json:"only_pending"`
	Limit        int      `json:"limit"`
}

type AttemptFilters struct {
	Category *string    `json:"category"`
	Before   *time.Time `json:"before"`
}
