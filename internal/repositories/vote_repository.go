package repositories

import (
	"context"

	"github.com/quizhub/quiz-service/internal/models"
)

type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	GetByUserAndQuestion(ctx context.Context, userID, questionID string) (*models.Vote, error)
	// SwapType moves a vote from one type to another only if it still holds from.
	// It reports false when no row matched.
	SwapType(ctx context.Context, id string, from, to models.VoteType) (bool, error)
	CountByQuestion(ctx context.Context, questionID string) (*models.VoteCounts, error)
}
