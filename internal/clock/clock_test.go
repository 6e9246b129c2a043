package clock

import (
	"testing"
	"time"
)

func TestDay_Today(t *testing.T) {
	ref := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	w := Day(ref, 0)

	wantStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Fatalf("end = %v, want %v", w.End, wantStart.AddDate(0, 0, 1))
	}
}

func TestDay_Yesterday(t *testing.T) {
	ref := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	w := Day(ref, 1)

	wantStart := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", w.Start, wantStart)
	}
	if w.Key() != "2025-02-28" {
		t.Fatalf("key = %q, want 2025-02-28", w.Key())
	}
}

func TestWindow_Contains(t *testing.T) {
	ref := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	w := Day(ref, 0)

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"reference instant", ref, true},
		{"start inclusive", w.Start, true},
		{"end exclusive", w.End, false},
		{"just before end", w.End.Add(-time.Nanosecond), true},
		{"previous day", w.Start.Add(-time.Second), false},
	}
	for _, tc := range cases {
		if got := w.Contains(tc.t); got != tc.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tc.name, tc.t, got, tc.want)
		}
	}
}

func TestDay_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Dublin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// Clocks go forward on 2025-03-30; the day is 23 hours long.
	ref := time.Date(2025, 3, 30, 12, 0, 0, 0, loc)
	w := Day(ref, 0)
	if w.Key() != "2025-03-30" {
		t.Fatalf("key = %q, want 2025-03-30", w.Key())
	}
	if got := w.End.Sub(w.Start); got != 23*time.Hour {
		t.Fatalf("window length = %v, want 23h", got)
	}

	// Yesterday's window must abut today's exactly.
	y := Day(ref, 1)
	if !y.End.Equal(w.Start) {
		t.Fatalf("yesterday.End = %v, today.Start = %v", y.End, w.Start)
	}
}
