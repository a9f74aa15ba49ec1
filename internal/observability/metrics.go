// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Simulation metrics
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	SimulationErrors   *prometheus.CounterVec
	WeeksProduced      prometheus.Counter

	// Persistence metrics
	RunsPersisted    prometheus.Counter
	ResultsPersisted prometheus.Counter
	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec

	// Reporting metrics
	ReportsRendered *prometheus.CounterVec

	// Server metrics
	WSClientsConnected prometheus.Gauge
	HTTPRequestsTotal  *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "rpcfi"
	}

	return &Metrics{
		SimulationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Total number of simulations executed by scenario and growth strategy",
		}, []string{"scenario", "strategy"}),
		SimulationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Simulation execution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scenario"}),
		SimulationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "errors_total",
			Help:      "Total number of simulation errors by type",
		}, []string{"error_type"}),
		WeeksProduced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "weeks_produced_total",
			Help:      "Total number of weekly result rows produced",
		}),

		RunsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "runs_persisted_total",
			Help:      "Total number of simulation runs persisted",
		}),
		ResultsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "weekly_results_persisted_total",
			Help:      "Total number of weekly result rows persisted",
		}),
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		ReportsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_rendered_total",
			Help:      "Total number of reports rendered by format",
		}, []string{"format"}),

		WSClientsConnected: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "ws_clients_connected",
			Help:      "Current number of connected WebSocket clients",
		}),
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by path and status",
		}, []string{"path", "status"}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSimulation records a completed simulation.
func RecordSimulation(scenario, strategy string, durationSeconds float64, weeks int) {
	DefaultMetrics.SimulationsTotal.WithLabelValues(scenario, strategy).Inc()
	DefaultMetrics.SimulationDuration.WithLabelValues(scenario).Observe(durationSeconds)
	DefaultMetrics.WeeksProduced.Add(float64(weeks))
}

// RecordSimulationError records a failed simulation.
func RecordSimulationError(errorType string) {
	DefaultMetrics.SimulationErrors.WithLabelValues(errorType).Inc()
}

// RecordRunPersisted records a persisted run and its result rows.
func RecordRunPersisted(weeks int) {
	DefaultMetrics.RunsPersisted.Inc()
	DefaultMetrics.ResultsPersisted.Add(float64(weeks))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordReportRendered records a rendered report.
func RecordReportRendered(format string) {
	DefaultMetrics.ReportsRendered.WithLabelValues(format).Inc()
}
