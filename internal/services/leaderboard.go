package services

import (
	"sort"
	"time"

	"github.com/quizhub/quiz-service/internal/models"
)

const LeaderboardSize = 10

// RankFirstAttempts keeps each (user, category) pair's chronologically first
// attempt, drops pairs whose first attempt is before since (when set), and
// returns at most limit of them by score descending. Equal scores go to the
// earlier attempt, then to the lower insertion sequence.
func RankFirstAttempts(attempts []*models.Attempt, since *time.Time, limit int) []*models.Attempt {
	ordered := make([]*models.Attempt, len(attempts))
	copy(ordered, attempts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return earlier(ordered[i], ordered[j])
	})

	type groupKey struct{ userID, category string }
	seen := make(map[groupKey]struct{}, len(ordered))
	firsts := make([]*models.Attempt, 0, len(ordered))
	for _, a := range ordered {
		key := groupKey{a.UserID, a.Category}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if since != nil && a.CreatedAt.Before(*since) {
			continue
		}
		firsts = append(firsts, a)
	}

	sort.SliceStable(firsts, func(i, j int) bool {
		if firsts[i].Score != firsts[j].Score {
			return firsts[i].Score > firsts[j].Score
		}
		return earlier(firsts[i], firsts[j])
	})

	if limit > 0 && len(firsts) > limit {
		firsts = firsts[:limit]
	}
	return firsts
}

func earlier(a, b *models.Attempt) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Seq < b.Seq
}

// startOfDay returns local midnight for t and the midnight after it.
func startOfDay(t time.Time) (time.Time, time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight, midnight.AddDate(0, 0, 1)
}
