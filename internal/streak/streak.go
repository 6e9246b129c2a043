// Package streak holds the transition function for a habit's streak
// counters. A streak is a run of consecutive calendar days, ending today, on
// which the habit was completed.
package streak

// Next computes the counters after today's completion state changes.
//
// Marking today not-completed resets the current streak; the best streak is
// never lowered. Marking today completed extends the streak when yesterday
// was completed and restarts it at 1 otherwise. A habit with no record for
// yesterday (including a brand-new habit) behaves the same as one where
// yesterday was missed.
func Next(current, best int, completedToday, completedYesterday bool) (newStreak, newBest int) {
	switch {
	case !completedToday:
		newStreak = 0
	case completedYesterday:
		newStreak = current + 1
	default:
		newStreak = 1
	}
	return newStreak, max(best, newStreak)
}
