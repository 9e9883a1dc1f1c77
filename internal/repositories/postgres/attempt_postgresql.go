package postgres

import (
	"context"

	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) Create(ctx context.Context, attempt *models.Attempt) error {
	return translateError(a.db.WithContext(ctx).Create(attempt).Error)
}

func (a *AttemptPostgreSQL) ExistsForUserCategory(ctx context.Context, userID, category string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.Attempt{}).
		Where("user_id = ? AND category = ?", userID, category).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *AttemptPostgreSQL) ListByUser(ctx context.Context, userID string, category *string) ([]*models.Attempt, error) {
	var attempts []*models.Attempt

	query := a.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	if err := query.Order("created_at DESC, seq DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a *AttemptPostgreSQL) ListChronological(ctx context.Context, filters repositories.AttemptFilters) ([]*models.Attempt, error) {
	var attempts []*models.Attempt

	query := a.db.WithContext(ctx).Model(&models.Attempt{})
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Before != nil {
		query = query.Where("created_at < ?", *filters.Before)
	}

	if err := query.Order("created_at ASC, seq ASC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
