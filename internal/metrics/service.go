package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_results_recorded_total",
			Help: "The total number of match results applied to the standings.",
		}),
		ResultCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_result_corrections_total",
			Help: "The total number of recorded results that replaced an earlier result.",
		}),
		ResultsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_results_rejected_total",
			Help: "The total number of match results that were rejected or rolled back.",
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_result_processing_duration_seconds",
			Help:    "The duration of recording a single match result.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_events_published_total",
			Help: "The total number of events published to Pub/Sub.",
		}, []string{"event_type"}),
		StoreUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_store_up",
			Help: "Whether the last connectivity check reached the database (1) or not (0).",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ResultsRecorded,
		s.ResultCorrections,
		s.ResultsRejected,
		s.ProcessingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.StoreUp,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) IncResultCorrections() {
	s.ResultCorrections.Inc()
}

func (s *Service) IncResultsRejected() {
	s.ResultsRejected.Inc()
}

func (s *Service) ObserveProcessingDuration(seconds float64) {
	s.ProcessingDuration.Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished(eventType string) {
	s.EventsPublished.WithLabelValues(eventType).Inc()
}

func (s *Service) SetStoreUp(up bool) {
	if up {
		s.StoreUp.Set(1)
		return
	}
	s.StoreUp.Set(0)
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
