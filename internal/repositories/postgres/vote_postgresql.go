package postgres

import (
	"context"

	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type VotePostgreSQL struct {
	db *gorm.DB
}

func NewVotePostgreSQL(db *gorm.DB) repositories.VoteRepository {
	return &VotePostgreSQL{db: db}
}

func (v *VotePostgreSQL) Create(ctx context.Context, vote *models.Vote) error {
	return translateError(v.db.WithContext(ctx).Create(vote).Error)
}

func (v *VotePostgreSQL) GetByUserAndQuestion(ctx context.Context, userID, questionID string) (*models.Vote, error) {
	var vote models.Vote
	if err := v.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&vote).Error; err != nil {
		return nil, translateError(err)
	}
	return &vote, nil
}

func (v *VotePostgreSQL) SwapType(ctx context.Context, id string, from, to models.VoteType) (bool, error) {
	result := v.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("id = ? AND vote_type = ?", id, from).
		Update("vote_type", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (v *VotePostgreSQL) CountByQuestion(ctx context.Context, questionID string) (*models.VoteCounts, error) {
	var rows []struct {
		VoteType models.VoteType
		Total    int64
	}
	if err := v.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("vote_type, COUNT(*) AS total").
		Where("question_id = ?", questionID).
		Group("vote_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := &models.VoteCounts{}
	for _, row := range rows {
		switch row.VoteType {
		case models.VoteUp:
			counts.Upvotes = row.Total
		case models.VoteDown:
			counts.Downvotes = row.Total
		}
	}
	return counts, nil
}
