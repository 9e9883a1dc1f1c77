package repositories

import (
	"context"

	"github.com/quizhub/quiz-service/internal/models"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
	SetApproved(ctx context.Context, id string, approved bool) (*models.Question, error)

	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, error)
	Categories(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, id string) (bool, error)
}
