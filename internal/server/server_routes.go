package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/streakd/streakd/internal/logger"
	"github.com/streakd/streakd/internal/storage"
	"github.com/streakd/streakd/pkg/habit"
	"github.com/streakd/streakd/pkg/versioninfo"
)

const maxTitleLength = 100

type createHabitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Category    string `json:"category"`
	Color       string `json:"color"`
}

type logHabitRequest struct {
	Completed *bool  `json:"completed"`
	Notes     string `json:"notes"`
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validateCreateHabit(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h := habit.Habit{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
		Color:       req.Color,
		CreatedAt:   s.now(),
	}
	if h.Frequency == "" {
		h.Frequency = habit.FrequencyDaily
	}
	if h.Category == "" {
		h.Category = habit.DefaultCategory
	}
	if h.Color == "" {
		h.Color = habit.DefaultColor
	}

	logger.Info("Creating habit", "user_id", userID, "habit_id", h.ID, "title", h.Title)
	if err := s.store.PutHabit(userID, h); err != nil {
		logger.Error("Failed to store habit", "user_id", userID, "title", h.Title, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create habit")
		return
	}

	s.updateActiveHabits(userID)
	writeData(w, http.StatusCreated, h)
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	logger.Debug("Listing habits", "user_id", userID)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Error("Failed to list habits", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch habits")
		return
	}

	now := s.now()
	out := make([]habit.WithStatus, 0, len(habits))
	for _, h := range habits {
		done, err := s.tracker.TodayCompleted(userID, h.ID, now)
		if err != nil {
			logger.Error("Failed to check today's log", "user_id", userID, "habit_id", h.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch habits")
			return
		}
		out = append(out, habit.WithStatus{Habit: h, TodayCompleted: done})
	}

	writeData(w, http.StatusOK, out)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	userID := s.userID(r)
	if userID == "" || habitID == "" {
		writeError(w, http.StatusBadRequest, "user id and habit id are required")
		return
	}

	h, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		s.writeStoreError(w, "fetch habit", userID, habitID, err)
		return
	}
	logs, err := s.store.ListLogs(userID, habitID)
	if err != nil {
		s.writeStoreError(w, "fetch habit logs", userID, habitID, err)
		return
	}

	writeData(w, http.StatusOK, struct {
		habit.Habit
		Logs []habit.Log `json:"logs"`
	}{Habit: h, Logs: logs})
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	userID := s.userID(r)
	logger.Info("Deleting habit", "user_id", userID, "habit_id", habitID)
	if userID == "" || habitID == "" {
		writeError(w, http.StatusBadRequest, "user id and habit id are required")
		return
	}

	if err := s.store.DeleteHabit(userID, habitID); err != nil {
		s.writeStoreError(w, "delete habit", userID, habitID, err)
		return
	}
	logger.Info("Habit deleted", "user_id", userID, "habit_id", habitID)

	s.updateActiveHabits(userID)
	writeMessage(w, http.StatusOK, "habit deleted successfully")
}

func (s *Server) logHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	userID := s.userID(r)
	if userID == "" || habitID == "" {
		writeError(w, http.StatusBadRequest, "user id and habit id are required")
		return
	}

	// Empty body means "completed today".
	req := logHabitRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Invalid JSON in log habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	log, err := s.tracker.LogCompletion(r.Context(), userID, habitID, completed, req.Notes, s.now())
	if err != nil {
		s.writeStoreError(w, "log habit", userID, habitID, err)
		return
	}
	logger.Info("Habit logged", "user_id", userID, "habit_id", habitID, "completed", completed)
	recordLog(completed)

	writeData(w, http.StatusOK, log)
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to serialize version info")
		return
	}
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// writeStoreError maps persistence errors onto the API taxonomy: a missing
// or foreign habit is 404, anything else is an opaque 500.
func (s *Server) writeStoreError(w http.ResponseWriter, op, userID, habitID string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	logger.Error("Failed to "+op, "user_id", userID, "habit_id", habitID, "error", err)
	writeError(w, http.StatusInternalServerError, "failed to "+op)
}

func (s *Server) updateActiveHabits(userID string) {
	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Warn("Failed to update active habits metric", "user_id", userID, "error", err)
		return
	}
	activeHabitsPerUser.WithLabelValues(userID).Set(float64(len(habits)))
}

func validateCreateHabit(req createHabitRequest) error {
	if len(req.Title) == 0 || len(req.Title) > maxTitleLength {
		return fmt.Errorf("bad habit title: must be 1-%d characters", maxTitleLength)
	}
	if req.Frequency != "" && req.Frequency != habit.FrequencyDaily && req.Frequency != habit.FrequencyWeekly {
		return fmt.Errorf("bad frequency: must be %q or %q", habit.FrequencyDaily, habit.FrequencyWeekly)
	}
	return nil
}
