package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Time limits are in seconds.
const (
	DefaultTimeLimit = 30
	MinTimeLimit     = 5
	MaxTimeLimit     = 3600

	MaxOptions = 10
)

type Question struct {
	ID            string                      `json:"id" gorm:"primaryKey;type:uuid"`
	Question      string                      `json:"question" gorm:"type:text;not null"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb;not null"`
	CorrectAnswer string                      `json:"correctAnswer" gorm:"column:correct_answer;not null"`
	Category      string                      `json:"category" gorm:"not null;size:100;index"`
	Difficulty    string                      `json:"difficulty" gorm:"not null;size:50;index"`
	TimeLimit     int                         `json:"timeLimit" gorm:"not null;default:30"` // seconds
	Explanation   string                      `json:"explanation" gorm:"type:text;not null;default:''"`
	Tags          datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedBy     *string                     `json:"createdBy" gorm:"type:uuid;index"`
	IsApproved    bool                        `json:"isApproved" gorm:"not null;default:false;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuestionView is the shape handed to quiz takers: everything except the answer.
type QuestionView struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	TimeLimit   int      `json:"timeLimit"`
	Explanation string   `json:"explanation"`
	Tags        []string `json:"tags"`
	IsApproved  bool     `json:"isApproved"`
}

func (q *Question) View() QuestionView {
	return QuestionView{
		ID:          q.ID,
		Question:    q.Question,
		Options:     nonNil(q.Options),
		Category:    q.Category,
		Difficulty:  q.Difficulty,
		TimeLimit:   q.TimeLimit,
		Explanation: q.Explanation,
		Tags:        nonNil(q.Tags),
		IsApproved:  q.IsApproved,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
