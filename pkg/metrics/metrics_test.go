package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/api/v1/available-slots", "200", 0.1)
	m.RecordHTTPRequest("GET", "/api/v1/available-slots", "200", 0.2)
	m.RecordFetchAttempt("master_endpoint", "transient_error")
	m.RecordFetchResult("cache")
	m.RecordCacheOperation("get", "hit")
	m.RecordSuperseded("get_available_slots")
	m.RecordSlotResolved("past-cutoff")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/available-slots", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FetchAttemptsTotal.WithLabelValues("master_endpoint", "transient_error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FetchResultsTotal.WithLabelValues("cache")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheOperationsTotal.WithLabelValues("get", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SupersededTotal.WithLabelValues("get_available_slots")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SlotsResolvedTotal.WithLabelValues("past-cutoff")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", "200", 0)
		m.RecordFetchAttempt("generic_endpoint", "ok")
		m.RecordFetchResult("remote")
		m.RecordCacheOperation("put", "ok")
		m.RecordSuperseded("get_date_availability")
		m.RecordSlotResolved("none")
	})
}
