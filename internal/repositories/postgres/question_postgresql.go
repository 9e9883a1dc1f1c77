package postgres

import (
	"context"
	"encoding/json"

	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return translateError(q.db.WithContext(ctx).Create(question).Error)
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	var questions []*models.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	result := q.db.WithContext(ctx).Model(question).Select("*").Omit("id", "created_at").Updates(question)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, id string) (bool, error) {
	result := q.db.WithContext(ctx).Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (q *QuestionPostgreSQL) SetApproved(ctx context.Context, id string, approved bool) (*models.Question, error) {
	result := q.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Update("is_approved", approved)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return q.GetByID(ctx, id)
}

func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, error) {
	var questions []*models.Question

	query := q.db.WithContext(ctx).Model(&models.Question{})
	query, err := q.applyFilters(query, filters)
	if err != nil {
		return nil, err
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (q *QuestionPostgreSQL) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := q.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (q *QuestionPostgreSQL) applyFilters(query *gorm.DB, filters repositories.QuestionFilters) (*gorm.DB, error) {
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.OnlyApproved {
		query = query.Where("is_approved = ?", true)
	}
	if filters.OnlyPending {
		query = query.Where("is_approved = ?", false)
	}

	// any-of: OR together one jsonb containment check per tag
	if len(filters.Tags) > 0 {
		var group *gorm.DB
		for _, tag := range filters.Tags {
			needle, err := json.Marshal([]string{tag})
			if err != nil {
				return nil, err
			}
			if group == nil {
				group = q.db.Where("tags @> ?::jsonb", string(needle))
			} else {
				group = group.Or("tags @> ?::jsonb", string(needle))
			}
		}
		query = query.Where(group)
	}

	return query, nil
}
