package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
	"github.com/quizhub/quiz-service/internal/validator"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*models.Question)
	return q, args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	qs, _ := args.Get(0).([]*models.Question)
	return qs, args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionRepository) SetApproved(ctx context.Context, id string, approved bool) (*models.Question, error) {
	args := m.Called(ctx, id, approved)
	q, _ := args.Get(0).(*models.Question)
	return q, args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, error) {
	args := m.Called(ctx, filters)
	qs, _ := args.Get(0).([]*models.Question)
	return qs, args.Error(1)
}

func (m *MockQuestionRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]string)
	return cs, args.Error(1)
}

func (m *MockQuestionRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockVoteRepository is a mock implementation of VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) GetByUserAndQuestion(ctx context.Context, userID, questionID string) (*models.Vote, error) {
	args := m.Called(ctx, userID, questionID)
	v, _ := args.Get(0).(*models.Vote)
	return v, args.Error(1)
}

func (m *MockVoteRepository) SwapType(ctx context.Context, id string, from, to models.VoteType) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoteRepository) CountByQuestion(ctx context.Context, questionID string) (*models.VoteCounts, error) {
	args := m.Called(ctx, questionID)
	c, _ := args.Get(0).(*models.VoteCounts)
	return c, args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) ExistsForUserCategory(ctx context.Context, userID, category string) (bool, error) {
	args := m.Called(ctx, userID, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) ListByUser(ctx context.Context, userID string, category *string) ([]*models.Attempt, error) {
	args := m.Called(ctx, userID, category)
	as, _ := args.Get(0).([]*models.Attempt)
	return as, args.Error(1)
}

func (m *MockAttemptRepository) ListChronological(ctx context.Context, filters repositories.AttemptFilters) ([]*models.Attempt, error) {
	args := m.Called(ctx, filters)
	as, _ := args.Get(0).([]*models.Attempt)
	return as, args.Error(1)
}

// MockRepository is a mock implementation of the main Repository interface
type MockRepository struct {
	users     *MockUserRepository
	questions *MockQuestionRepository
	votes     *MockVoteRepository
	attempts  *MockAttemptRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		users:     &MockUserRepository{},
		questions: &MockQuestionRepository{},
		votes:     &MockVoteRepository{},
		attempts:  &MockAttemptRepository{},
	}
}

func (m *MockRepository) User() repositories.UserRepository         { return m.users }
func (m *MockRepository) Question() repositories.QuestionRepository { return m.questions }
func (m *MockRepository) Vote() repositories.VoteRepository         { return m.votes }
func (m *MockRepository) Attempt() repositories.AttemptRepository   { return m.attempts }

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.questions.AssertExpectations(t)
	m.votes.AssertExpectations(t)
	m.attempts.AssertExpectations(t)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testValidator() *validator.Validator {
	return validator.New()
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}
