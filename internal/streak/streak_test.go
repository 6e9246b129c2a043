package streak

import "testing"

func TestNext(t *testing.T) {
	cases := []struct {
		name                 string
		current, best        int
		today, yesterday     bool
		wantStreak, wantBest int
	}{
		{"continuity", 5, 5, true, true, 6, 6},
		{"reset keeps best", 5, 10, false, true, 0, 10},
		{"reset keeps best without yesterday", 5, 10, false, false, 0, 10},
		{"restart after gap", 5, 5, true, false, 1, 5},
		{"first ever log", 0, 0, true, false, 1, 1},
		{"first ever not completed", 0, 0, false, false, 0, 0},
		{"extend below best", 2, 9, true, true, 3, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, b := Next(tc.current, tc.best, tc.today, tc.yesterday)
			if s != tc.wantStreak || b != tc.wantBest {
				t.Fatalf("Next(%d, %d, %v, %v) = (%d, %d), want (%d, %d)",
					tc.current, tc.best, tc.today, tc.yesterday, s, b, tc.wantStreak, tc.wantBest)
			}
		})
	}
}

// Best streak never decreases and always dominates the current streak, for
// any sequence of toggles.
func TestNext_BestMonotonic(t *testing.T) {
	toggles := []struct{ today, yesterday bool }{
		{true, false}, {true, true}, {true, true}, {false, true},
		{true, false}, {false, false}, {true, false}, {true, true},
	}

	current, best := 0, 0
	for i, tg := range toggles {
		newStreak, newBest := Next(current, best, tg.today, tg.yesterday)
		if newBest < best {
			t.Fatalf("step %d: best decreased %d -> %d", i, best, newBest)
		}
		if newBest < newStreak {
			t.Fatalf("step %d: best %d < streak %d", i, newBest, newStreak)
		}
		if newStreak < 0 {
			t.Fatalf("step %d: negative streak %d", i, newStreak)
		}
		current, best = newStreak, newBest
	}
}
