package remind

type mockNotifier struct {
	sent      [][]string
	hoursLeft []int
}

func (m *mockNotifier) SendReminder(habitTitles []string, hoursLeft int) error {
	m.sent = append(m.sent, habitTitles)
	m.hoursLeft = append(m.hoursLeft, hoursLeft)
	return nil
}

var _ Notifier = (*mockNotifier)(nil)
