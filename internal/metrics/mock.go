package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	resultsRecorded     int
	resultCorrections   int
	resultsRejected     int
	processingDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	eventsPublished     map[string]int
	storeUp             bool
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
		eventsPublished:     make(map[string]int),
	}
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncResultCorrections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultCorrections++
}

func (m *Mock) IncResultsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRejected++
}

func (m *Mock) ObserveProcessingDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, seconds)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[eventType]++
}

func (m *Mock) SetStoreUp(up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeUp = up
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// ResultsRecorded returns the number of times IncResultsRecorded was called.
func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

// ResultCorrections returns the number of times IncResultCorrections was called.
func (m *Mock) ResultCorrections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultCorrections
}

// ResultsRejected returns the number of times IncResultsRejected was called.
func (m *Mock) ResultsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRejected
}

// ProcessingDurations returns every observed duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// EventsPublished returns how often an event type was published.
func (m *Mock) EventsPublished(eventType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[eventType]
}

// StoreUp returns the last value passed to SetStoreUp.
func (m *Mock) StoreUp() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeUp
}
