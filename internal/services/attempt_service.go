package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizhub/quiz-service/internal/events"
	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"github.com/quizhub/quiz-service/internal/validator"
)

const (
	DefaultLegacyLimit = 5
	MaxLegacyLimit     = 100

	submitMessage = "Quiz submitted successfully!"
)

type attemptService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	oplog     *ServiceLogger
	validator *validator.Validator
	notifier  *eventNotifier
}

func NewAttemptService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AttemptService {
	return &attemptService{
		repo:      repo,
		logger:    logger,
		oplog:     NewServiceLogger(logger, "attempt"),
		validator: validator,
		notifier:  newEventNotifier(publisher, logger),
	}
}

// Submit scores the answers, records the attempt and reports whether it is the
// user's first in the resulting category. Answers whose question cannot be
// resolved are skipped but still count toward totalQuestions.
func (s *attemptService) Submit(ctx context.Context, userID string, req *SubmitRequest) (result *SubmitResult, err error) {
	op := s.oplog.WithOperation(ctx, "submit_attempt", userID)
	defer func() { op.LogResult("", err) }()

	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	questions, err := s.resolveQuestions(ctx, submittedIDs(req.Answers))
	if err != nil {
		return nil, err
	}

	scored := make([]models.AttemptAnswer, 0, len(req.Answers))
	score := 0
	category := ""
	for _, answer := range req.Answers {
		q, ok := lookup(questions, answer.QuestionID)
		if !ok {
			continue
		}

		isCorrect := answer.SelectedOption != nil && *answer.SelectedOption == q.CorrectAnswer
		if isCorrect {
			score++
		}
		if category == "" {
			category = q.Category
		}

		scored = append(scored, models.AttemptAnswer{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			IsCorrect:      isCorrect,
		})
	}

	// Checked before the insert so it only reflects earlier submissions.
	seenBefore, err := s.repo.Attempt().ExistsForUserCategory(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to check previous attempts: %w", err)
	}

	attempt := &models.Attempt{
		UserID:         userID,
		Category:       category,
		Questions:      scored,
		Score:          score,
		TotalQuestions: len(req.Answers),
	}
	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	s.notifier.notify(ctx, events.EventAttemptSubmitted, events.AttemptSubmittedEvent{
		AttemptID:      attempt.ID,
		UserID:         userID,
		Category:       category,
		Score:          score,
		TotalQuestions: attempt.TotalQuestions,
		FirstAttempt:   !seenBefore,
	})

	return &SubmitResult{
		Message:        submitMessage,
		Score:          score,
		TotalQuestions: attempt.TotalQuestions,
		CorrectAnswers: scored,
		FirstAttempt:   !seenBefore,
	}, nil
}

// History lists the user's attempts newest first with question text re-attached.
func (s *attemptService) History(ctx context.Context, userID string, category *string) ([]models.AttemptHistory, error) {
	attempts, err := s.repo.Attempt().ListByUser(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	var ids []string
	for _, a := range attempts {
		for _, answer := range a.Questions {
			ids = append(ids, answer.QuestionID)
		}
	}
	questions, err := s.resolveQuestions(ctx, ids)
	if err != nil {
		return nil, err
	}

	history := make([]models.AttemptHistory, 0, len(attempts))
	for _, a := range attempts {
		answers := make([]models.HistoryAnswer, 0, len(a.Questions))
		for _, answer := range a.Questions {
			entry := models.HistoryAnswer{
				QuestionID:     answer.QuestionID,
				SelectedOption: answer.SelectedOption,
				IsCorrect:      answer.IsCorrect,
			}
			if q, ok := lookup(questions, answer.QuestionID); ok {
				entry.Question = &models.QuestionSummary{
					ID:       q.ID,
					Question: q.Question,
					Options:  nonNilStrings(q.Options),
				}
			}
			answers = append(answers, entry)
		}

		history = append(history, models.AttemptHistory{
			ID:             a.ID,
			Category:       a.Category,
			Questions:      answers,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			CreatedAt:      a.CreatedAt,
		})
	}
	return history, nil
}

// StartLegacy serves the older quiz start path: approved questions in a
// category, answer stripped, default five of them.
func (s *attemptService) StartLegacy(ctx context.Context, category *string, limit int) ([]models.QuestionView, error) {
	if limit <= 0 {
		limit = DefaultLegacyLimit
	}
	if limit > MaxLegacyLimit {
		limit = MaxLegacyLimit
	}

	filters := repositories.QuestionFilters{OnlyApproved: true, Limit: limit}
	if category != nil {
		filters.Category = *category
	}

	questions, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return toViews(questions), nil
}

// resolveQuestions loads every parseable id in one query, keyed by id.
func (s *attemptService) resolveQuestions(ctx context.Context, ids []string) (map[string]*models.Question, error) {
	seen := make(map[string]struct{}, len(ids))
	valid := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, ok := canonicalID(raw)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		valid = append(valid, id)
	}

	byID := make(map[string]*models.Question, len(valid))
	if len(valid) == 0 {
		return byID, nil
	}

	questions, err := s.repo.Question().GetByIDs(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}

func lookup(questions map[string]*models.Question, rawID string) (*models.Question, bool) {
	id, ok := canonicalID(rawID)
	if !ok {
		return nil, false
	}
	q, ok := questions[id]
	return q, ok
}

func submittedIDs(answers []SubmittedAnswer) []string {
	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	return ids
}
