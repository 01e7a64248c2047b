package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	ResultsRecorded    prometheus.Counter
	ResultCorrections  prometheus.Counter
	ResultsRejected    prometheus.Counter
	ProcessingDuration prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    *prometheus.CounterVec
	StoreUp            prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}
