// Package remind finds habit streaks that will break at midnight and sends
// the user a reminder.
package remind

import (
	"context"
	"time"

	"github.com/streakd/streakd/internal/clock"
	"github.com/streakd/streakd/internal/logger"
	"github.com/streakd/streakd/pkg/habit"
)

type Querier interface {
	ListHabits(ctx context.Context) ([]habit.WithStatus, error)
}

type Notifier interface {
	SendReminder(habitTitles []string, hoursLeft int) error
}

// ExpiringStreaks returns the titles of habits whose live streak will reset
// at the next midnight because today has no completed log yet.
func ExpiringStreaks(ctx context.Context, q Querier, now time.Time) ([]string, error) {
	habits, err := q.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	var titles []string
	for _, h := range habits {
		if h.Streak > 0 && !h.TodayCompleted {
			titles = append(titles, h.Title)
		}
	}
	return titles, nil
}

// Run sends a reminder when midnight is at most thresholdHours away and at
// least one streak is about to expire.
func Run(ctx context.Context, q Querier, n Notifier, thresholdHours int, now time.Time) error {
	hoursLeft := int(clock.Day(now, 0).End.Sub(now).Hours())
	if hoursLeft > thresholdHours {
		logger.Debug("Midnight too far away, skipping reminder", "hours_left", hoursLeft, "threshold", thresholdHours)
		return nil
	}

	titles, err := ExpiringStreaks(ctx, q, now)
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		logger.Info("No expiring streaks, nothing to send")
		return nil
	}

	logger.Info("Sending streak reminder", "habits", len(titles), "hours_left", hoursLeft)
	return n.SendReminder(titles, hoursLeft)
}
