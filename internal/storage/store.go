package storage

import (
	"errors"

	"github.com/streakd/streakd/internal/clock"
	"github.com/streakd/streakd/pkg/habit"
)

// ErrNotFound is returned when a habit does not exist for the given user.
// Foreign habits are indistinguishable from missing ones.
var ErrNotFound = errors.New("habit not found")

// Store is the persistence layer for habits and their per-day logs. All
// operations are scoped by the owning user.
type Store interface {
	PutHabit(userID string, h habit.Habit) error
	GetHabit(userID, habitID string) (habit.Habit, error)
	ListHabits(userID string) ([]habit.Habit, error)

	// DeleteHabit removes the habit and every log referencing it.
	DeleteHabit(userID, habitID string) error

	// FindLog returns the log whose date falls in w, or nil if there is none.
	FindLog(userID, habitID string, w clock.Window) (*habit.Log, error)

	// UpsertLog updates the log for w's day or creates one dated at w.Start.
	// At most one log ever exists per (habit, day); concurrent calls for the
	// same day resolve to a single record.
	UpsertLog(userID, habitID string, w clock.Window, completed bool, notes string) (habit.Log, error)

	ListLogs(userID, habitID string) ([]habit.Log, error)

	// API keys are stored hashed; the value is the owning user.
	PutAPIKey(keyHash, userID string) error
	GetAPIKey(keyHash string) (userID string, found bool, err error)
	ListAPIKeyHashes(userID string) ([]string, error)
	DeleteAPIKey(keyHash string) error

	Close() error
}
