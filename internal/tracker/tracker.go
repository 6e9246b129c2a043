// Package tracker reconciles a habit's daily log with its streak counters.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/streakd/streakd/internal/clock"
	"github.com/streakd/streakd/internal/logger"
	"github.com/streakd/streakd/internal/storage"
	"github.com/streakd/streakd/internal/streak"
	"github.com/streakd/streakd/pkg/habit"
)

type Service struct {
	store storage.Store

	// Per-habit locks serialize concurrent logging calls for the same habit,
	// so two rapid toggles can't both read a stale streak counter.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(store storage.Store) *Service {
	return &Service{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) habitLock(userID, habitID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID + "/" + habitID
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// LogCompletion records the habit's completion state for the calendar day
// containing now and updates its streak counters. The day's log is upserted,
// so repeating the call for the same day converges instead of
// double-counting. The log write commits before the counter write; on a
// partial failure a retry of the same request restores consistency.
func (s *Service) LogCompletion(ctx context.Context, userID, habitID string, completed bool, notes string, now time.Time) (habit.Log, error) {
	if err := ctx.Err(); err != nil {
		return habit.Log{}, err
	}

	l := s.habitLock(userID, habitID)
	l.Lock()
	defer l.Unlock()

	h, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		return habit.Log{}, err
	}

	today := clock.Day(now, 0)
	prior, err := s.store.FindLog(userID, habitID, today)
	if err != nil {
		return habit.Log{}, fmt.Errorf("querying today's log: %w", err)
	}

	log, err := s.store.UpsertLog(userID, habitID, today, completed, notes)
	if err != nil {
		return habit.Log{}, fmt.Errorf("upserting today's log: %w", err)
	}

	// The counters already reflect today's state; a repeat call may still
	// update notes, but must not re-apply the streak transition.
	if prior != nil && prior.Completed == completed {
		return log, nil
	}

	// Yesterday's state comes from a fresh query, not a cached flag, so a
	// retroactively edited log is still honored.
	completedYesterday := false
	yesterdayLog, err := s.store.FindLog(userID, habitID, clock.Day(now, 1))
	if err != nil {
		return habit.Log{}, fmt.Errorf("querying yesterday's log: %w", err)
	}
	if yesterdayLog != nil {
		completedYesterday = yesterdayLog.Completed
	}

	newStreak, newBest := streak.Next(h.Streak, h.BestStreak, completed, completedYesterday)
	if newStreak == h.Streak && newBest == h.BestStreak {
		return log, nil
	}

	h.Streak = newStreak
	h.BestStreak = newBest
	if err := s.store.PutHabit(userID, h); err != nil {
		return habit.Log{}, fmt.Errorf("updating streak counters: %w", err)
	}
	logger.Debug("Reconciled streak", "habit_id", habitID, "streak", newStreak, "best_streak", newBest)

	return log, nil
}

// TodayCompleted reports whether the habit has a completed log in the
// calendar day containing now.
func (s *Service) TodayCompleted(userID, habitID string, now time.Time) (bool, error) {
	log, err := s.store.FindLog(userID, habitID, clock.Day(now, 0))
	if err != nil {
		return false, err
	}
	return log != nil && log.Completed, nil
}
