package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"github.com/quizhub/quiz-service/internal/validator"
)

type castVoteRequest struct {
	Type       models.VoteType `json:"type" validate:"required,vote_type"`
	QuestionID string          `json:"questionId" validate:"required,uuid"`
}

type voteService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	oplog     *ServiceLogger
	validator *validator.Validator
}

func NewVoteService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) VoteService {
	return &voteService{
		repo:      repo,
		logger:    logger,
		oplog:     NewServiceLogger(logger, "vote"),
		validator: validator,
	}
}

// Cast moves the (user, question) pair through NoVote, Upvoted and Downvoted.
// Repeating the current vote is a conflict; the opposite vote flips the record.
func (s *voteService) Cast(ctx context.Context, userID, questionID string, voteType models.VoteType) (outcome VoteOutcome, err error) {
	op := s.oplog.WithOperation(ctx, "cast_"+string(voteType), userID)
	defer func() { op.LogResult(questionID, err) }()

	if err := s.validator.ValidateStruct(castVoteRequest{Type: voteType, QuestionID: questionID}); err != nil {
		return 0, err
	}

	exists, err := s.repo.Question().Exists(ctx, questionID)
	if err != nil {
		return 0, fmt.Errorf("failed to check question: %w", err)
	}
	if !exists {
		return 0, ErrQuestionNotFound
	}

	existing, err := s.repo.Vote().GetByUserAndQuestion(ctx, userID, questionID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return 0, fmt.Errorf("failed to load vote: %w", err)
	}

	if existing == nil {
		vote := &models.Vote{UserID: userID, QuestionID: questionID, VoteType: voteType}
		if err := s.repo.Vote().Create(ctx, vote); err != nil {
			if repositories.IsDuplicateError(err) {
				// Lost a race with a concurrent create for the same pair.
				return 0, alreadyVoted(voteType)
			}
			return 0, fmt.Errorf("failed to create vote: %w", err)
		}
		return VoteCreated, nil
	}

	if existing.VoteType == voteType {
		return 0, alreadyVoted(voteType)
	}

	swapped, err := s.repo.Vote().SwapType(ctx, existing.ID, existing.VoteType, voteType)
	if err != nil {
		return 0, fmt.Errorf("failed to change vote: %w", err)
	}
	if !swapped {
		return 0, ErrVoteFlipConflict
	}
	return VoteChanged, nil
}

func (s *voteService) Counts(ctx context.Context, questionID string) (*models.VoteCounts, error) {
	if !isUUID(questionID) {
		return &models.VoteCounts{}, nil
	}
	counts, err := s.repo.Vote().CountByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	return counts, nil
}

func alreadyVoted(voteType models.VoteType) error {
	if voteType == models.VoteUp {
		return ErrAlreadyUpvoted
	}
	return ErrAlreadyDownvoted
}
