package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcomes
const (
	OutcomePlaced        = "placed"
	OutcomeMalformed     = "malformed"
	OutcomeInvalidAction = "invalid_action"
	OutcomeRejected      = "rejected" // broker answered non-2xx
	OutcomeError         = "error"    // transport failure
)

// DefaultLatencyBuckets are histogram buckets for latency in seconds
var DefaultLatencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0,
}

// Metrics holds the relay's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec   // labels: method, path, status
	HTTPDuration  *prometheus.HistogramVec // labels: method, path
	Webhooks      *prometheus.CounterVec   // labels: outcome
	BrokerLatency *prometheus.HistogramVec // labels: outcome
}

// New registers and returns all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "HTTP requests served, by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relay_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: DefaultLatencyBuckets,
		}, []string{"method", "path"}),
		Webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_webhooks_total",
			Help: "Webhook signals processed, by outcome",
		}, []string{"outcome"}),
		BrokerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relay_broker_request_duration_seconds",
			Help:    "Round trip time of order placement calls to the broker",
			Buckets: DefaultLatencyBuckets,
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.Webhooks,
		m.BrokerLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest increments the HTTP request counter
func (m *Metrics) RecordHTTPRequest(method, path string, status int) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// RecordHTTPDuration records HTTP request duration in seconds
func (m *Metrics) RecordHTTPDuration(method, path string, seconds float64) {
	m.HTTPDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordWebhook counts one processed signal
func (m *Metrics) RecordWebhook(outcome string) {
	m.Webhooks.WithLabelValues(outcome).Inc()
}

// RecordBrokerCall records one order placement round trip
func (m *Metrics) RecordBrokerCall(outcome string, seconds float64) {
	m.BrokerLatency.WithLabelValues(outcome).Observe(seconds)
}
