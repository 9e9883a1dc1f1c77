package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptAnswer struct {
	QuestionID     string  `json:"questionId"`
	SelectedOption *string `json:"selectedOption"`
	IsCorrect      bool    `json:"isCorrect"`
}

// Attempt is one scored quiz submission. Rows are never updated or deleted.
type Attempt struct {
	ID             string                             `json:"id" gorm:"primaryKey;type:uuid"`
	Seq            int64                              `json:"-" gorm:"type:bigserial;not null;uniqueIndex;<-:false"`
	UserID         string                             `json:"userId" gorm:"type:uuid;not null;index:idx_attempts_user_category"`
	Category       string                             `json:"category" gorm:"not null;size:100;index:idx_attempts_user_category;index"`
	Questions      datatypes.JSONSlice[AttemptAnswer] `json:"questions" gorm:"type:jsonb;not null"`
	Score          int                                `json:"score" gorm:"not null"`
	TotalQuestions int                                `json:"totalQuestions" gorm:"not null"`
	CreatedAt      time.Time                          `json:"createdAt" gorm:"not null;index"`
}

func (Attempt) TableName() string {
	return "attempts"
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// HistoryAnswer is an attempt answer with the question re-attached for display.
type HistoryAnswer struct {
	QuestionID     string           `json:"questionId"`
	SelectedOption *string          `json:"selectedOption"`
	IsCorrect      bool             `json:"isCorrect"`
	Question       *QuestionSummary `json:"question,omitempty"`
}

type QuestionSummary struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type AttemptHistory struct {
	ID             string          `json:"id"`
	Category       string          `json:"category"`
	Questions      []HistoryAnswer `json:"questions"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type LeaderboardEntry struct {
	Username   string `json:"username"`
	Category   string `json:"category"`
	TotalScore int    `json:"totalScore"`
}
