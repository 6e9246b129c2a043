package remind

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/streakd/streakd/pkg/habit"
)

func withStatus(title string, streak int, todayCompleted bool) habit.WithStatus {
	return habit.WithStatus{
		Habit:          habit.Habit{ID: title, Title: title, Streak: streak},
		TodayCompleted: todayCompleted,
	}
}

func TestExpiringStreaks(t *testing.T) {
	q := &mockClient{habits: []habit.WithStatus{
		withStatus("guitar", 3, false),  // live streak, not logged today
		withStatus("coding", 5, true),   // already logged
		withStatus("running", 0, false), // no streak to lose
	}}

	got, err := ExpiringStreaks(context.Background(), q, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "guitar" {
		t.Fatalf("got %v, want [guitar]", got)
	}
}

func TestExpiringStreaks_QuerierError(t *testing.T) {
	q := &mockClient{err: errors.New("boom")}
	if _, err := ExpiringStreaks(context.Background(), q, time.Now()); err == nil {
		t.Fatal("expected error from querier")
	}
}

func TestRun_SendsWithinThreshold(t *testing.T) {
	q := &mockClient{habits: []habit.WithStatus{withStatus("guitar", 3, false)}}
	n := &mockNotifier{}

	// 22:30 local: 1.5 hours until midnight.
	now := time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC)
	if err := Run(context.Background(), q, n, 2, now); err != nil {
		t.Fatal(err)
	}

	if len(n.sent) != 1 {
		t.Fatalf("sent %d reminders, want 1", len(n.sent))
	}
	if len(n.sent[0]) != 1 || n.sent[0][0] != "guitar" {
		t.Fatalf("sent %v, want [guitar]", n.sent[0])
	}
	if n.hoursLeft[0] != 1 {
		t.Fatalf("hours_left = %d, want 1", n.hoursLeft[0])
	}
}

func TestRun_SkipsOutsideThreshold(t *testing.T) {
	q := &mockClient{habits: []habit.WithStatus{withStatus("guitar", 3, false)}}
	n := &mockNotifier{}

	// Noon: midnight is 12 hours away.
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	if err := Run(context.Background(), q, n, 2, now); err != nil {
		t.Fatal(err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("sent %d reminders, want 0", len(n.sent))
	}
}

func TestRun_NothingExpiring(t *testing.T) {
	q := &mockClient{habits: []habit.WithStatus{withStatus("guitar", 3, true)}}
	n := &mockNotifier{}

	now := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	if err := Run(context.Background(), q, n, 2, now); err != nil {
		t.Fatal(err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("sent %d reminders, want 0", len(n.sent))
	}
}
