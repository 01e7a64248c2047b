package notifier

import (
	"sync"

	"github.com/mauv0809/sports-manager/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []ResultNotification
	SendStandingsCalls          []struct {
		Sport league.Sport
		Table []league.Standing
	}
	SendTournamentCompletedCalls []struct {
		Tournament league.Tournament
		Winner     league.Team
	}

	// Optional overrides
	SendResultNotificationFunc func(n ResultNotification, dryRun bool) error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendStandingsCalls = nil
	m.SendTournamentCompletedCalls = nil
}

func (m *Mock) SendResultNotification(n ResultNotification, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, n)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(n, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(sport league.Sport, table []league.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, struct {
		Sport league.Sport
		Table []league.Standing
	}{sport, table})
	return nil
}

func (m *Mock) SendTournamentCompleted(t league.Tournament, winner league.Team, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentCompletedCalls = append(m.SendTournamentCompletedCalls, struct {
		Tournament league.Tournament
		Winner     league.Team
	}{t, winner})
	return nil
}

// ResultNotifications returns a copy of the recorded result notifications.
func (m *Mock) ResultNotifications() []ResultNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ResultNotification(nil), m.SendResultNotificationCalls...)
}
