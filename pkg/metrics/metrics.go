package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса доступности
// Все методы безопасно вызывать на nil-получателе (метрики выключены)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FetchAttemptsTotal   *prometheus.CounterVec
	FetchResultsTotal    *prometheus.CounterVec
	CacheOperationsTotal *prometheus.CounterVec
	SupersededTotal      *prometheus.CounterVec
	SlotsResolvedTotal   *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в реестре по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создаёт метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		FetchAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_fetch_attempts_total",
			Help:        "Schedule fetch attempts by strategy and outcome",
			ConstLabels: constLabels,
		}, []string{"strategy", "outcome"}),

		FetchResultsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_fetch_results_total",
			Help:        "Schedule fetch results by data source (remote, cache, empty)",
			ConstLabels: constLabels,
		}, []string{"source"}),

		CacheOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_cache_operations_total",
			Help:        "Schedule cache operations by type and result",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),

		SupersededTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_superseded_total",
			Help:        "Availability computations discarded because a newer request superseded them",
			ConstLabels: constLabels,
		}, []string{"usecase"}),

		SlotsResolvedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_slots_resolved_total",
			Help:        "Resolved slots by availability reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.FetchAttemptsTotal,
		m.FetchResultsTotal,
		m.CacheOperationsTotal,
		m.SupersededTotal,
		m.SlotsResolvedTotal,
	)

	return m
}

// RecordHTTPRequest фиксирует HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordFetchAttempt фиксирует попытку загрузки расписания
func (m *Metrics) RecordFetchAttempt(strategy, outcome string) {
	if m == nil {
		return
	}
	m.FetchAttemptsTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordFetchResult фиксирует источник данных итогового результата загрузки
func (m *Metrics) RecordFetchResult(source string) {
	if m == nil {
		return
	}
	m.FetchResultsTotal.WithLabelValues(source).Inc()
}

// RecordCacheOperation фиксирует операцию с кэшем расписаний
func (m *Metrics) RecordCacheOperation(operation, result string) {
	if m == nil {
		return
	}
	m.CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordSuperseded фиксирует отброшенный устаревший запрос
func (m *Metrics) RecordSuperseded(usecase string) {
	if m == nil {
		return
	}
	m.SupersededTotal.WithLabelValues(usecase).Inc()
}

// RecordSlotResolved фиксирует результат вычисления доступности слота
func (m *Metrics) RecordSlotResolved(reason string) {
	if m == nil {
		return
	}
	m.SlotsResolvedTotal.WithLabelValues(reason).Inc()
}
