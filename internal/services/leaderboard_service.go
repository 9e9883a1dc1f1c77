package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizhub/quiz-service/internal/models"
	"github.com/quizhub/quiz-service/internal/repositories"
)

type leaderboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewLeaderboardService(repo repositories.Repository, logger *slog.Logger) LeaderboardService {
	return &leaderboardService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Leaderboard recomputes the ranking from the attempt log on every call.
// In today mode only pairs whose first ever attempt happened today are ranked.
func (s *leaderboardService) Leaderboard(ctx context.Context, query LeaderboardQuery) ([]models.LeaderboardEntry, error) {
	filters := repositories.AttemptFilters{Category: query.Category}

	var since *time.Time
	if query.Today {
		midnight, next := startOfDay(s.now())
		since = &midnight
		filters.Before = &next
	}

	attempts, err := s.repo.Attempt().ListChronological(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	ranked := RankFirstAttempts(attempts, since, LeaderboardSize)
	if len(ranked) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	userIDs := make([]string, 0, len(ranked))
	for _, a := range ranked {
		userIDs = append(userIDs, a.UserID)
	}
	users, err := s.repo.User().GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for _, a := range ranked {
		username, ok := usernames[a.UserID]
		if !ok {
			s.logger.DebugContext(ctx, "Leaderboard entry without user dropped", "user_id", a.UserID)
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			Username:   username,
			Category:   a.Category,
			TotalScore: a.Score,
		})
	}
	return entries, nil
}
