package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quizhub/quiz-service/internal/events"
	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"github.com/quizhub/quiz-service/internal/validator"
)

const MaxAttemptQuestions = 10

type questionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	oplog     *ServiceLogger
	validator *validator.Validator
	notifier  *eventNotifier
}

func NewQuestionService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		oplog:     NewServiceLogger(logger, "question"),
		validator: validator,
		notifier:  newEventNotifier(publisher, logger),
	}
}

// ===== QUERIES =====

func (s *questionService) List(ctx context.Context, query QuestionQuery) ([]*models.Question, error) {
	questions, err := s.repo.Question().List(ctx, repositories.QuestionFilters{
		Category:     query.Category,
		Difficulty:   query.Difficulty,
		Tags:         query.Tags,
		OnlyApproved: query.OnlyApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) ListForAttempt(ctx context.Context, query QuestionQuery, limit int) ([]models.QuestionView, error) {
	if limit <= 0 || limit > MaxAttemptQuestions {
		limit = MaxAttemptQuestions
	}

	questions, err := s.repo.Question().List(ctx, repositories.QuestionFilters{
		Category:     query.Category,
		Difficulty:   query.Difficulty,
		Tags:         query.Tags,
		OnlyApproved: true,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for attempt: %w", err)
	}
	return toViews(questions), nil
}

func (s *questionService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Question().Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *questionService) Pending(ctx context.Context) ([]*models.Question, error) {
	questions, err := s.repo.Question().List(ctx, repositories.QuestionFilters{OnlyPending: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending questions: %w", err)
	}
	return questions, nil
}

// ===== MUTATIONS =====

func (s *questionService) Create(ctx context.Context, adminID string, req *CreateQuestionRequest) (question *models.Question, err error) {
	op := s.oplog.WithOperation(ctx, "create_question", adminID)
	defer func() { op.LogResult(questionID(question), err) }()

	approved := true
	if req.IsApproved != nil {
		approved = *req.IsApproved
	}
	return s.create(ctx, adminID, req, approved)
}

func (s *questionService) Contribute(ctx context.Context, userID string, req *CreateQuestionRequest) (question *models.Question, err error) {
	op := s.oplog.WithOperation(ctx, "contribute_question", userID)
	defer func() { op.LogResult(questionID(question), err) }()

	question, err = s.create(ctx, userID, req, false)
	if err != nil {
		return nil, err
	}

	s.notifier.notify(ctx, events.EventQuestionContributed, events.QuestionContributedEvent{
		QuestionID:    question.ID,
		ContributorID: userID,
		Category:      question.Category,
	})
	return question, nil
}

func (s *questionService) create(ctx context.Context, authorID string, req *CreateQuestionRequest, approved bool) (*models.Question, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	question := newQuestion(req)
	question.IsApproved = approved
	if authorID != "" {
		question.CreatedBy = &authorID
	}

	if err := s.validator.Validate(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id string, req *UpdateQuestionRequest) (question *models.Question, err error) {
	op := s.oplog.WithOperation(ctx, "update_question", "")
	defer func() { op.LogResult(id, err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	question, err = s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(question, req)
	if err := s.validator.Validate(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Update(ctx, question); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// Delete removes a question permanently. Deleting a missing question succeeds.
func (s *questionService) Delete(ctx context.Context, id string) (err error) {
	op := s.oplog.WithOperation(ctx, "delete_question", "")
	defer func() { op.LogResult(id, err) }()

	if !isUUID(id) {
		return nil
	}

	removed, err := s.repo.Question().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if !removed {
		s.logger.DebugContext(ctx, "Delete of missing question ignored", "question_id", id)
	}
	return nil
}

func (s *questionService) Approve(ctx context.Context, id, adminID string) (question *models.Question, err error) {
	op := s.oplog.WithOperation(ctx, "approve_question", adminID)
	defer func() { op.LogResult(id, err) }()

	if !isUUID(id) {
		return nil, ErrQuestionNotFound
	}

	question, err = s.repo.Question().SetApproved(ctx, id, true)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to approve question: %w", err)
	}

	s.notifier.notify(ctx, events.EventQuestionApproved, events.QuestionApprovedEvent{
		QuestionID: question.ID,
		ApprovedBy: adminID,
		CreatedBy:  question.CreatedBy,
		Category:   question.Category,
	})
	return question, nil
}

// ===== HELPERS =====

func (s *questionService) getQuestion(ctx context.Context, id string) (*models.Question, error) {
	if !isUUID(id) {
		return nil, ErrQuestionNotFound
	}
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	return question, nil
}

func newQuestion(req *CreateQuestionRequest) *models.Question {
	timeLimit := models.DefaultTimeLimit
	if req.TimeLimit != nil {
		timeLimit = *req.TimeLimit
	}
	return &models.Question{
		Question:      strings.TrimSpace(req.Question),
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Category:      strings.TrimSpace(req.Category),
		Difficulty:    strings.TrimSpace(req.Difficulty),
		TimeLimit:     timeLimit,
		Explanation:   req.Explanation,
		Tags:          nonNilStrings(req.Tags),
	}
}

func applyUpdate(q *models.Question, req *UpdateQuestionRequest) {
	if req.Question != nil {
		q.Question = strings.TrimSpace(*req.Question)
	}
	if req.Options != nil {
		q.Options = req.Options
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Category != nil {
		q.Category = strings.TrimSpace(*req.Category)
	}
	if req.Difficulty != nil {
		q.Difficulty = strings.TrimSpace(*req.Difficulty)
	}
	if req.TimeLimit != nil {
		q.TimeLimit = *req.TimeLimit
	}
	if req.Explanation != nil {
		q.Explanation = *req.Explanation
	}
	if req.Tags != nil {
		q.Tags = req.Tags
	}
	if req.IsApproved != nil {
		q.IsApproved = *req.IsApproved
	}
}

func toViews(questions []*models.Question) []models.QuestionView {
	views := make([]models.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View())
	}
	return views
}

func questionID(q *models.Question) string {
	if q == nil {
		return ""
	}
	return q.ID
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
