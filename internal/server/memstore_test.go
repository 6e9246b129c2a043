package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/streakd/streakd/internal/clock"
	"github.com/streakd/streakd/internal/storage"
	"github.com/streakd/streakd/pkg/habit"
)

type memStore struct {
	mu      sync.RWMutex
	habits  map[string]map[string]habit.Habit          // user -> habitID
	logs    map[string]map[string]map[string]habit.Log // user -> habitID -> day key
	apiKeys map[string]string                          // key hash -> user
}

func newMemStore() *memStore {
	return &memStore{
		habits:  map[string]map[string]habit.Habit{},
		logs:    map[string]map[string]map[string]habit.Log{},
		apiKeys: map[string]string{},
	}
}

func (m *memStore) PutHabit(userID string, h habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.habits[userID] == nil {
		m.habits[userID] = map[string]habit.Habit{}
	}
	m.habits[userID][h.ID] = h
	return nil
}

func (m *memStore) GetHabit(userID, habitID string) (habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.habits[userID][habitID]
	if !ok {
		return habit.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (m *memStore) ListHabits(userID string) ([]habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []habit.Habit{}
	for _, h := range m.habits[userID] {
		out = append(out, h)
	}
	return out, nil
}

func (m *memStore) DeleteHabit(userID, habitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[userID][habitID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.habits[userID], habitID)
	delete(m.logs[userID], habitID)
	return nil
}

func (m *memStore) FindLog(userID, habitID string, w clock.Window) (*habit.Log, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.logs[userID][habitID][w.Key()]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memStore) UpsertLog(userID, habitID string, w clock.Window, completed bool, notes string) (habit.Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logs[userID] == nil {
		m.logs[userID] = map[string]map[string]habit.Log{}
	}
	if m.logs[userID][habitID] == nil {
		m.logs[userID][habitID] = map[string]habit.Log{}
	}
	l, ok := m.logs[userID][habitID][w.Key()]
	if !ok {
		l = habit.Log{ID: uuid.NewString(), HabitID: habitID, Date: w.Start}
	}
	l.Completed = completed
	l.Notes = notes
	m.logs[userID][habitID][w.Key()] = l
	return l, nil
}

func (m *memStore) ListLogs(userID, habitID string) ([]habit.Log, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []habit.Log{}
	for _, l := range m.logs[userID][habitID] {
		out = append(out, l)
	}
	return out, nil
}

func (m *memStore) PutAPIKey(keyHash, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKeys[keyHash] = userID
	return nil
}

func (m *memStore) GetAPIKey(keyHash string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userID, ok := m.apiKeys[keyHash]
	return userID, ok, nil
}

func (m *memStore) ListAPIKeyHashes(userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []string{}
	for hash, uid := range m.apiKeys {
		if uid == userID {
			out = append(out, hash)
		}
	}
	return out, nil
}

func (m *memStore) DeleteAPIKey(keyHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.apiKeys, keyHash)
	return nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
