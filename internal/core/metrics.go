package core

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics records request and engine metrics on a private registry.
// It implements MetricsCollector and the engine's observer hooks.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	suggestions *prometheus.CounterVec
	degraded    prometheus.Counter
}

// NewPrometheusMetrics registers all collectors under namespace. Go runtime
// and process collectors are included.
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "endpoint", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		suggestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestions_generated_total",
				Help:      "Generated suggestions and alerts by kind.",
			},
			[]string{"kind"},
		),
		degraded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "agricultural_degradations_total",
				Help:      "Requests whose smart suggestions were dropped after a generator error.",
			},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.suggestions,
		m.degraded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest implements MetricsCollector.
func (m *PrometheusMetrics) RecordRequest(method, endpoint, status string, duration time.Duration) {
	m.requests.WithLabelValues(method, endpoint, status).Inc()
	m.latency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// ObserveSuggestions counts the output of one engine run.
func (m *PrometheusMetrics) ObserveSuggestions(base, alerts, smart int) {
	m.suggestions.WithLabelValues("base").Add(float64(base))
	m.suggestions.WithLabelValues("alert").Add(float64(alerts))
	m.suggestions.WithLabelValues("smart").Add(float64(smart))
}

// ObserveAgriculturalDegradation counts a generator failure.
func (m *PrometheusMetrics) ObserveAgriculturalDegradation() {
	m.degraded.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}
