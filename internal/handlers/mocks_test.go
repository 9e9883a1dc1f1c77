package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/services"
	"github.com/stretchr/testify/mock"
)

const testSecret = "handler-test-secret"

// tokenAuthService verifies real tokens and mocks the rest of the auth service
type tokenAuthService struct {
	mock.Mock
	tokens *auth.TokenManager
}

func (m *tokenAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *tokenAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResponse), args.Error(1)
}

func (m *tokenAuthService) Authenticate(_ context.Context, token string) (*auth.Identity, error) {
	identity, err := m.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrUnauthenticated, err)
	}
	return identity, nil
}

func (m *tokenAuthService) SeedAdmin(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockQuestionService struct {
	mock.Mock
}

func (m *mockQuestionService) List(ctx context.Context, query services.QuestionQuery) ([]*models.Question, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *mockQuestionService) ListForAttempt(ctx context.Context, query services.QuestionQuery, limit int) ([]models.QuestionView, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]models.QuestionView), args.Error(1)
}

func (m *mockQuestionService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockQuestionService) Create(ctx context.Context, adminID string, req *services.CreateQuestionRequest) (*models.Question, error) {
	args := m.Called(ctx, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *mockQuestionService) Update(ctx context.Context, id string, req *services.UpdateQuestionRequest) (*models.Question, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *mockQuestionService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockQuestionService) Contribute(ctx context.Context, userID string, req *services.CreateQuestionRequest) (*models.Question, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *mockQuestionService) Pending(ctx context.Context) ([]*models.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *mockQuestionService) Approve(ctx context.Context, id, adminID string) (*models.Question, error) {
	args := m.Called(ctx, id, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

type mockVoteService struct {
	mock.Mock
}

func (m *mockVoteService) Cast(ctx context.Context, userID, questionID string, voteType models.VoteType) (services.VoteOutcome, error) {
	args := m.Called(ctx, userID, questionID, voteType)
	return args.Get(0).(services.VoteOutcome), args.Error(1)
}

func (m *mockVoteService) Counts(ctx context.Context, questionID string) (*models.VoteCounts, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoteCounts), args.Error(1)
}

type mockAttemptService struct {
	mock.Mock
}

func (m *mockAttemptService) Submit(ctx context.Context, userID string, req *services.SubmitRequest) (*services.SubmitResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmitResult), args.Error(1)
}

func (m *mockAttemptService) History(ctx context.Context, userID string, category *string) ([]models.AttemptHistory, error) {
	args := m.Called(ctx, userID, category)
	return args.Get(0).([]models.AttemptHistory), args.Error(1)
}

func (m *mockAttemptService) StartLegacy(ctx context.Context, category *string, limit int) ([]models.QuestionView, error) {
	args := m.Called(ctx, category, limit)
	return args.Get(0).([]models.QuestionView), args.Error(1)
}

type mockLeaderboardService struct {
	mock.Mock
}

func (m *mockLeaderboardService) Leaderboard(ctx context.Context, query services.LeaderboardQuery) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

type mockImportExportService struct {
	mock.Mock
}

func (m *mockImportExportService) ExportQuestions(ctx context.Context, query services.ExportQuery) ([]byte, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockImportExportService) ImportQuestions(ctx context.Context, r io.Reader, adminID string) (*models.ImportResult, error) {
	args := m.Called(ctx, r, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

// stubServiceManager satisfies services.ServiceManager with the mocks above
type stubServiceManager struct {
	auth         *tokenAuthService
	question     *mockQuestionService
	vote         *mockVoteService
	attempt      *mockAttemptService
	leaderboard  *mockLeaderboardService
	importExport *mockImportExportService
}

func newStubServiceManager() *stubServiceManager {
	return &stubServiceManager{
		auth:         &tokenAuthService{tokens: auth.NewTokenManager(testSecret, time.Hour)},
		question:     &mockQuestionService{},
		vote:         &mockVoteService{},
		attempt:      &mockAttemptService{},
		leaderboard:  &mockLeaderboardService{},
		importExport: &mockImportExportService{},
	}
}

func (s *stubServiceManager) Auth() services.AuthService                 { return s.auth }
func (s *stubServiceManager) Question() services.QuestionService         { return s.question }
func (s *stubServiceManager) Vote() services.VoteService                 { return s.vote }
func (s *stubServiceManager) Attempt() services.AttemptService           { return s.attempt }
func (s *stubServiceManager) Leaderboard() services.LeaderboardService   { return s.leaderboard }
func (s *stubServiceManager) ImportExport() services.ImportExportService { return s.importExport }

func (s *stubServiceManager) tokenFor(userID string, role models.UserRole) string {
	token, err := s.auth.tokens.Issue(userID, role)
	if err != nil {
		panic(err)
	}
	return token
}
