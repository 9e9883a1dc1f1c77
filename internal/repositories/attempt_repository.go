package repositories

import (
	"context"

	"github.com/quizhub/quiz-service/internal/models"
)

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	ExistsForUserCategory(ctx context.Context, userID, category string) (bool, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string, category *string) ([]*models.Attempt, error)
	// ListChronological returns attempts oldest first, ties in insertion order.
	ListChronological(ctx context.Context, filters AttemptFilters) ([]*models.Attempt, error)
}
