// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Engine metrics
	BuilderDuration *prometheus.HistogramVec
	TradesLoaded    prometheus.Counter

	// Import metrics
	ImportsTotal   *prometheus.CounterVec
	TradesImported prometheus.Counter

	// Report metrics
	ReportsGenerated prometheus.Counter
	ReportDuration   prometheus.Histogram

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance registered with reg.
// A nil reg uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "trade_journal"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Engine metrics
		BuilderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "view_duration_seconds",
			Help:      "Time to build an analytics view in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"view"}),
		TradesLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "trades_loaded_total",
			Help:      "Total number of trades loaded for analytics",
		}),

		// Import metrics
		ImportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "imports_total",
			Help:      "Total number of import runs by status",
		}, []string{"status"}),
		TradesImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "trades_imported_total",
			Help:      "Total number of trades written by imports",
		}),

		// Report metrics
		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),
		ReportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "build_duration_seconds",
			Help:      "Report build duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		// HTTP metrics
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", nil)

// RecordViewDuration records how long a view took to build.
func RecordViewDuration(view string, seconds float64) {
	DefaultMetrics.BuilderDuration.WithLabelValues(view).Observe(seconds)
}

// RecordTradesLoaded adds n to the trades loaded counter.
func RecordTradesLoaded(n int) {
	DefaultMetrics.TradesLoaded.Add(float64(n))
}

// RecordImport records an import run and the number of trades it wrote.
func RecordImport(status string, imported int) {
	DefaultMetrics.ImportsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.TradesImported.Add(float64(imported))
}

// RecordReport records a generated report.
func RecordReport(seconds float64) {
	DefaultMetrics.ReportsGenerated.Inc()
	DefaultMetrics.ReportDuration.Observe(seconds)
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method, route string, status int, seconds float64) {
	DefaultMetrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	DefaultMetrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
