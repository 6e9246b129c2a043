package clock

import "time"

// Window is the half-open interval [Start, End) covering one calendar day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Day returns the window for the calendar day offsetDays before ref, in
// ref's location. Day(now, 0) is today, Day(now, 1) is yesterday. Boundaries
// come from calendar arithmetic rather than fixed 24h offsets, so DST
// transition days keep a single well-formed window.
func Day(ref time.Time, offsetDays int) Window {
	y, m, d := ref.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, ref.Location()).AddDate(0, 0, -offsetDays)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Key is the storage key for the window's day, one per calendar day.
func (w Window) Key() string {
	return w.Start.Format("2006-01-02")
}
