package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of domain events the service emits
type EventType string

const (
	EventUserRegistered      EventType = "user.registered"
	EventQuestionContributed EventType = "question.contributed"
	EventQuestionApproved    EventType = "question.approved"
	EventAttemptSubmitted    EventType = "attempt.submitted"
)

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// Event is the envelope for every published event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// Event payloads

type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type QuestionContributedEvent struct {
	QuestionID    string `json:"question_id"`
	ContributorID string `json:"contributor_id"`
	Category      string `json:"category"`
}

type QuestionApprovedEvent struct {
	QuestionID string  `json:"question_id"`
	ApprovedBy string  `json:"approved_by"`
	CreatedBy  *string `json:"created_by,omitempty"`
	Category   string  `json:"category"`
}

type AttemptSubmittedEvent struct {
	AttemptID      string `json:"attempt_id"`
	UserID         string `json:"user_id"`
	Category       string `json:"category"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	FirstAttempt   bool   `json:"first_attempt"`
}
