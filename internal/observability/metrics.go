package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/ats-ui/internal/types"
)

// Metrics holds the Prometheus collectors of the UI server.
type Metrics struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	backendCalls        *prometheus.CounterVec
	backendCallDuration *prometheus.HistogramVec

	reportsStored *prometheus.CounterVec
}

// MetricsOption configures Metrics.
type MetricsOption func(*Metrics)

// WithNamespace sets the metric namespace. Default "ats_ui".
func WithNamespace(namespace string) MetricsOption {
	return func(m *Metrics) { m.namespace = namespace }
}

// WithHistogramBuckets sets the latency buckets in seconds.
func WithHistogramBuckets(buckets []float64) MetricsOption {
	return func(m *Metrics) { m.buckets = buckets }
}

// WithRegistry registers the collectors on registry instead of a new one.
func WithRegistry(registry *prometheus.Registry) MetricsOption {
	return func(m *Metrics) { m.registry = registry }
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	m := &Metrics{
		namespace: "ats_ui",
		// Analysis calls run for tens of seconds.
		buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   m.buckets,
	}, []string{"route", "method"})

	m.backendCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "backend",
		Name:      "calls_total",
		Help:      "Total number of backend calls by operation and status code (0 for transport errors)",
	}, []string{"op", "status_code"})

	m.backendCallDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "backend",
		Name:      "call_duration_seconds",
		Help:      "Backend call duration in seconds",
		Buckets:   m.buckets,
	}, []string{"op"})

	m.reportsStored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "reports_stored_total",
		Help:      "Total number of analysis reports stored for viewing, by mode",
	}, []string{"mode"})

	return m
}

// ObserveBackendCall records one backend round trip.
func (m *Metrics) ObserveBackendCall(op string, status int, elapsed time.Duration) {
	m.backendCalls.WithLabelValues(op, strconv.Itoa(status)).Inc()
	m.backendCallDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveHTTPRequest records one served request. route is the mux pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ReportStored counts a report stored for viewing.
func (m *Metrics) ReportStored(mode types.Mode) {
	m.reportsStored.WithLabelValues(strconv.Itoa(int(mode))).Inc()
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
