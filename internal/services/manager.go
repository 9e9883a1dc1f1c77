package services

import (
	"log/slog"

	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/events"
	"github.com/quizhub/quiz-service/internal/ratelimit"
	"github.com/quizhub/quiz-service/internal/repositories"
	"github.com/quizhub/quiz-service/internal/validator"
)

// ServiceManager hands out every service built over one repository.
type ServiceManager interface {
	Auth() AuthService
	Question() QuestionService
	Vote() VoteService
	Attempt() AttemptService
	Leaderboard() LeaderboardService
	ImportExport() ImportExportService
}

type ServiceDeps struct {
	Repo      repositories.Repository
	Tokens    *auth.TokenManager
	Hasher    *auth.PasswordHasher
	Limiter   ratelimit.LoginLimiter
	Publisher events.EventPublisher
	Logger    *slog.Logger
	Validator *validator.Validator
}

type serviceManager struct {
	auth         AuthService
	question     QuestionService
	vote         VoteService
	attempt      AttemptService
	leaderboard  LeaderboardService
	importExport ImportExportService
}

func NewServiceManager(deps ServiceDeps) ServiceManager {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	return &serviceManager{
		auth:         NewAuthService(deps.Repo, deps.Tokens, deps.Hasher, deps.Limiter, deps.Publisher, deps.Logger, deps.Validator),
		question:     NewQuestionService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator),
		vote:         NewVoteService(deps.Repo, deps.Logger, deps.Validator),
		attempt:      NewAttemptService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator),
		leaderboard:  NewLeaderboardService(deps.Repo, deps.Logger),
		importExport: NewImportExportService(deps.Repo, deps.Logger, deps.Validator),
	}
}

func (m *serviceManager) Auth() AuthService                 { return m.auth }
func (m *serviceManager) Question() QuestionService         { return m.question }
func (m *serviceManager) Vote() VoteService                 { return m.vote }
func (m *serviceManager) Attempt() AttemptService           { return m.attempt }
func (m *serviceManager) Leaderboard() LeaderboardService   { return m.leaderboard }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
