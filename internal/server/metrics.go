package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each instance owns
// its registry, so several servers (or tests) never collide on
// registration.
type Metrics struct {
	registry       *prometheus.Registry
	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	handler        http.Handler
}

// NewMetrics creates the server collectors, along with the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "numkit",
			Name:      "active_requests",
			Help:      "Number of HTTP requests being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "numkit",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests received.",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "numkit",
			Name:      "operations_total",
			Help:      "Numeric operations served, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "numkit",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"path"}),
	}
	m.registry.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.operations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records the latency of a request to path.
func (m *Metrics) ObserveRequest(path string, d time.Duration) {
	m.duration.WithLabelValues(path).Observe(d.Seconds())
}

// RecordOperation counts one served operation. outcome is "success" or
// "error".
func (m *Metrics) RecordOperation(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// WritePrometheus writes the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
