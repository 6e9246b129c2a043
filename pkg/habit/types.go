package habit

import "time"

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"

	DefaultCategory = "general"
	DefaultColor    = "#3b82f6"
)

type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"best_streak"`
	CreatedAt   time.Time `json:"created_at"`
}

// Log is a habit's completion record for one calendar day. Date is always
// normalized to midnight of that day.
type Log struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
}

// WithStatus is a habit annotated with whether it has a completed log in
// today's window, as returned by the list endpoint.
type WithStatus struct {
	Habit
	TodayCompleted bool `json:"today_completed"`
}

type Analytics struct {
	HabitID        string `json:"habit_id"`
	Title          string `json:"title"`
	Streak         int    `json:"streak"`
	BestStreak     int    `json:"best_streak"`
	CompletionRate int    `json:"completion_rate"`
	TotalLogs      int    `json:"total_logs"`
	Completed      int    `json:"completed"`
}

// DailyProgress is one day of the dashboard's last-seven-days chart.
type DailyProgress struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Goal      int    `json:"goal"`
}
