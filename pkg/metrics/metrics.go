package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты запуска фоновых задач
const (
	SweepResultAcquired = "acquired"
	SweepResultSkipped  = "skipped"
	SweepResultError    = "error"
)

// Metrics коллекция метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge

	sweepsTotal         *prometheus.CounterVec
	sweepCancelledTotal *prometheus.CounterVec
	sweepFailuresTotal  *prometheus.CounterVec
	pendingWarnings     prometheus.Counter
}

// New создает и регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: constLabels,
		}),

		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}),

		sweepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweeps_total",
			Help:        "Sweep invocations by job and throttle result",
			ConstLabels: constLabels,
		}, []string{"job", "result"}),

		sweepCancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweep_cancelled_total",
			Help:        "Bookings cancelled automatically by sweeps",
			ConstLabels: constLabels,
		}, []string{"job"}),

		sweepFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweep_failures_total",
			Help:        "Bookings that failed to be processed by sweeps",
			ConstLabels: constLabels,
		}, []string{"job"}),

		pendingWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_pending_warnings_total",
			Help:        "Warnings sent before automatic cancellation of pending bookings",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.sweepsTotal,
		m.sweepCancelledTotal,
		m.sweepFailuresTotal,
		m.pendingWarnings,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет метрики пула соединений
func (m *Metrics) SetDBConnections(open, inUse int) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
}

// ObserveSweep фиксирует результат запуска фоновой задачи
func (m *Metrics) ObserveSweep(job, result string, cancelled, failed int) {
	if m == nil {
		return
	}
	m.sweepsTotal.WithLabelValues(job, result).Inc()
	if cancelled > 0 {
		m.sweepCancelledTotal.WithLabelValues(job).Add(float64(cancelled))
	}
	if failed > 0 {
		m.sweepFailuresTotal.WithLabelValues(job).Add(float64(failed))
	}
}

// IncPendingWarnings фиксирует отправленное предупреждение
func (m *Metrics) IncPendingWarnings() {
	if m == nil {
		return
	}
	m.pendingWarnings.Inc()
}
