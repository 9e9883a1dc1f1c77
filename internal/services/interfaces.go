package services

import (
	"context"
	"io"

	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/models"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
	SeedAdmin(ctx context.Context, username, password string) (*models.User, error)
}

type QuestionService interface {
	List(ctx context.Context, query QuestionQuery) ([]*models.Question, error)
	// ListForAttempt returns approved questions in their public shape.
	ListForAttempt(ctx context.Context, query QuestionQuery, limit int) ([]models.QuestionView, error)
	Categories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, adminID string, req *CreateQuestionRequest) (*models.Question, error)
	Update(ctx context.Context, id string, req *UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id string) error
	Contribute(ctx context.Context, userID string, req *CreateQuestionRequest) (*models.Question, error)
	Pending(ctx context.Context) ([]*models.Question, error)
	Approve(ctx context.Context, id, adminID string) (*models.Question, error)
}

type VoteService interface {
	Cast(ctx context.Context, userID, questionID string, voteType models.VoteType) (VoteOutcome, error)
	Counts(ctx context.Context, questionID string) (*models.VoteCounts, error)
}

type AttemptService interface {
	Submit(ctx context.Context, userID string, req *SubmitRequest) (*SubmitResult, error)
	History(ctx context.Context, userID string, category *string) ([]models.AttemptHistory, error)
	StartLegacy(ctx context.Context, category *string, limit int) ([]models.QuestionView, error)
}

type LeaderboardService interface {
	Leaderboard(ctx context.Context, query LeaderboardQuery) ([]models.LeaderboardEntry, error)
}

type ImportExportService interface {
	ExportQuestions(ctx context.Context, query ExportQuery) ([]byte, error)
	ImportQuestions(ctx context.Context, r io.Reader, adminID string) (*models.ImportResult, error)
}

// ===== REQUESTS AND RESULTS =====

type RegisterRequest struct {
	Username string          `json:"username" validate:"required,notblank,max=100"`
	Password string          `json:"password" validate:"required,min=6,max=72"`
	Role     models.UserRole `json:"role" validate:"omitempty,user_role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type QuestionQuery struct {
	Category     string
	Difficulty   string
	Tags         []string
	OnlyApproved bool
}

type CreateQuestionRequest struct {
	Question      string   `json:"question" validate:"required,notblank"`
	Options       []string `json:"options" validate:"required,min=1"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required,notblank"`
	Category      string   `json:"category" validate:"required,notblank,max=100"`
	Difficulty    string   `json:"difficulty" validate:"required,notblank,max=50"`
	TimeLimit     *int     `json:"timeLimit" validate:"omitempty,time_limit"`
	Explanation   string   `json:"explanation"`
	Tags          []string `json:"tags"`
	IsApproved    *bool    `json:"isApproved"`
}

// UpdateQuestionRequest is a partial update: nil fields keep their stored value.
type UpdateQuestionRequest struct {
	Question      *string  `json:"question" validate:"omitempty,notblank"`
	Options       []string `json:"options" validate:"omitempty,min=1"`
	CorrectAnswer *string  `json:"correctAnswer" validate:"omitempty,notblank"`
	Category      *string  `json:"category" validate:"omitempty,notblank,max=100"`
	Difficulty    *string  `json:"difficulty" validate:"omitempty,notblank,max=50"`
	TimeLimit     *int     `json:"timeLimit" validate:"omitempty,time_limit"`
	Explanation   *string  `json:"explanation"`
	Tags          []string `json:"tags"`
	IsApproved    *bool    `json:"isApproved"`
}

type VoteOutcome int

const (
	VoteCreated VoteOutcome = iota + 1
	VoteChanged
)

type SubmittedAnswer struct {
	QuestionID     string  `json:"questionId"`
	SelectedOption *string `json:"selectedOption"`
}

type SubmitRequest struct {
	Answers []SubmittedAnswer `json:"answers" validate:"required"`
}

type SubmitResult struct {
	Message        string                 `json:"message"`
	Score          int                    `json:"score"`
	TotalQuestions int                    `json:"totalQuestions"`
	CorrectAnswers []models.AttemptAnswer `json:"correctAnswers"`
	FirstAttempt   bool                   `json:"firstAttempt"`
}

type LeaderboardQuery struct {
	Category *string
	Today    bool
}

type ExportQuery struct {
	Category     string
	OnlyApproved bool
}
