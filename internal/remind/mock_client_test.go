package remind

import (
	"context"

	"github.com/streakd/streakd/pkg/habit"
)

type mockClient struct {
	habits []habit.WithStatus
	err    error
}

func (m *mockClient) ListHabits(_ context.Context) ([]habit.WithStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.habits, nil
}

var _ Querier = (*mockClient)(nil)
