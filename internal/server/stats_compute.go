package server

import (
	"math"
	"net/http"

	"github.com/streakd/streakd/internal/clock"
	"github.com/streakd/streakd/internal/logger"
	"github.com/streakd/streakd/pkg/habit"
)

func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	logger.Debug("Computing analytics", "user_id", userID)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Error("Failed to list habits for analytics", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch analytics")
		return
	}

	out := make([]habit.Analytics, 0, len(habits))
	for _, h := range habits {
		logs, err := s.store.ListLogs(userID, h.ID)
		if err != nil {
			logger.Error("Failed to list logs for analytics", "user_id", userID, "habit_id", h.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch analytics")
			return
		}

		completed := 0
		for _, l := range logs {
			if l.Completed {
				completed++
			}
		}
		rate := 0
		if len(logs) > 0 {
			rate = int(math.Round(float64(completed) / float64(len(logs)) * 100))
		}

		out = append(out, habit.Analytics{
			HabitID:        h.ID,
			Title:          h.Title,
			Streak:         h.Streak,
			BestStreak:     h.BestStreak,
			CompletionRate: rate,
			TotalLogs:      len(logs),
			Completed:      completed,
		})
	}

	writeData(w, http.StatusOK, out)
}

// getDailyProgress returns, for each of the last seven days, how many habits
// had a completed log against the total habit count.
func (s *Server) getDailyProgress(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Error("Failed to list habits for daily progress", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch daily progress")
		return
	}

	now := s.now()
	out := make([]habit.DailyProgress, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := clock.Day(now, offset)

		completed := 0
		for _, h := range habits {
			log, err := s.store.FindLog(userID, h.ID, day)
			if err != nil {
				logger.Error("Failed to check day's log", "user_id", userID, "habit_id", h.ID, "error", err)
				writeError(w, http.StatusInternalServerError, "failed to fetch daily progress")
				return
			}
			if log != nil && log.Completed {
				completed++
			}
		}

		out = append(out, habit.DailyProgress{
			Date:      day.Start.Format("Mon"),
			Completed: completed,
			Goal:      len(habits),
		})
	}

	writeData(w, http.StatusOK, out)
}
