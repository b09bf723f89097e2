package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpen      *prometheus.GaugeVec
	dbPoolIdle      *prometheus.GaugeVec
	dbPoolInUse     *prometheus.GaugeVec

	smsSentTotal       *prometheus.CounterVec
	reminderScansTotal *prometheus.CounterVec
}

// New creates and registers the collectors on the default registry.
func New(serviceName string) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries.",
		}, []string{"service", "operation", "result"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"service", "operation"}),
		dbPoolOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Open connections in the database pool.",
		}, []string{"service"}),
		dbPoolIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Idle connections in the database pool.",
		}, []string{"service"}),
		dbPoolInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Connections currently in use.",
		}, []string{"service"}),
		smsSentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sms_messages_total",
			Help: "SMS dispatch attempts by message kind and result.",
		}, []string{"service", "kind", "result"}),
		reminderScansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_scans_total",
			Help: "Reminder scheduler scan runs by result.",
		}, []string{"service", "result"}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueriesTotal,
		m.dbQueryDuration,
		m.dbPoolOpen,
		m.dbPoolIdle,
		m.dbPoolInUse,
		m.smsSentTotal,
		m.reminderScansTotal,
	)

	return m
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(service, method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(seconds)
}

// ObserveDBQuery records one database query.
func (m *Metrics) ObserveDBQuery(service, operation string, seconds float64, failed bool) {
	result := "ok"
	if failed {
		result = "error"
	}
	m.dbQueriesTotal.WithLabelValues(service, operation, result).Inc()
	m.dbQueryDuration.WithLabelValues(service, operation).Observe(seconds)
}

// SetDBPoolStats records connection pool gauges.
func (m *Metrics) SetDBPoolStats(service string, open, idle, inUse int) {
	m.dbPoolOpen.WithLabelValues(service).Set(float64(open))
	m.dbPoolIdle.WithLabelValues(service).Set(float64(idle))
	m.dbPoolInUse.WithLabelValues(service).Set(float64(inUse))
}

// IncSMSSent records one SMS dispatch attempt.
// Kind is the message kind (confirmation, reminder, cancellation).
func (m *Metrics) IncSMSSent(service, kind string, success bool) {
	result := "ok"
	if !success {
		result = "error"
	}
	m.smsSentTotal.WithLabelValues(service, kind, result).Inc()
}

// IncReminderScan records one scheduler scan run.
func (m *Metrics) IncReminderScan(service string, failed bool) {
	result := "ok"
	if failed {
		result = "error"
	}
	m.reminderScansTotal.WithLabelValues(service, result).Inc()
}
