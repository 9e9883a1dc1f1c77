package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

var VoteTypes = []VoteType{VoteUp, VoteDown}

func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// Vote is unique per (user, question).
type Vote struct {
	ID         string   `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string   `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_question"`
	QuestionID string   `json:"questionId" gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_question;index"`
	VoteType   VoteType `json:"voteType" gorm:"column:vote_type;not null;size:10"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}
