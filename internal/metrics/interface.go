package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncResultsRecorded()
	IncResultCorrections()
	IncResultsRejected()
	ObserveProcessingDuration(seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished(eventType string)
	SetStoreUp(up bool)
	SetStartupTime(seconds float64)
}
