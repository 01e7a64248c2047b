package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncResultsRecorded()
	s.IncResultsRecorded()
	s.IncResultCorrections()
	s.IncEventsPublished("result-recorded")
	s.SetStoreUp(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.ResultsRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ResultCorrections))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.ResultsRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.EventsPublished.WithLabelValues("result-recorded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.StoreUp))

	s.SetStoreUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(s.StoreUp))
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncResultsRecorded()

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "league_results_recorded_total 1"))
}
