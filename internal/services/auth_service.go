package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quizhub/quiz-service/internal/auth"
	"github.com/quizhub/quiz-service/internal/events"
	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/ratelimit"
	"github.com/quizhub/quiz-service/internal/repositories"
	"github.com/quizhub/quiz-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	hasher    *auth.PasswordHasher
	limiter   ratelimit.LoginLimiter
	logger    *slog.Logger
	oplog     *ServiceLogger
	validator *validator.Validator
	notifier  *eventNotifier
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenManager,
	hasher *auth.PasswordHasher,
	limiter ratelimit.LoginLimiter,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	if limiter == nil {
		limiter = ratelimit.NewNoopLoginLimiter()
	}
	return &authService{
		repo:      repo,
		tokens:    tokens,
		hasher:    hasher,
		limiter:   limiter,
		logger:    logger,
		oplog:     NewServiceLogger(logger, "auth"),
		validator: validator,
		notifier:  newEventNotifier(publisher, logger),
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (user *models.User, err error) {
	op := s.oplog.WithOperation(ctx, "register", "")
	defer func() {
		id := ""
		if user != nil {
			id = user.ID
		}
		op.LogResult(id, err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user = &models.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.notifier.notify(ctx, events.EventUserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)

	allowed, err := s.limiter.Allowed(ctx, username)
	if err != nil {
		// fail open
		s.logger.WarnContext(ctx, "Login limiter unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		s.logger.WarnContext(ctx, "Login throttled", "username", username)
		return nil, ErrTooManyRequests
	}

	user, err := s.repo.User().GetByUsername(ctx, username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.recordFailure(ctx, username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.recordFailure(ctx, username)
		return nil, ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.WarnContext(ctx, "Failed to reset login failures", "error", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return &LoginResponse{Token: token}, nil
}

func (s *authService) recordFailure(ctx context.Context, username string) {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.logger.WarnContext(ctx, "Failed to record login failure", "error", err)
	}
}

func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return identity, nil
}

// SeedAdmin creates an admin account for bootstrapping a fresh deployment.
func (s *authService) SeedAdmin(ctx context.Context, username, password string) (*models.User, error) {
	return s.Register(ctx, &RegisterRequest{
		Username: username,
		Password: password,
		Role:     models.RoleAdmin,
	})
}
