// internal/metrics/metrics.go - Prometheus 指标
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "code_analyzer"

const (
	ResultOK          = "ok"
	ResultSyntaxError = "syntax_error"
	ResultError       = "error"
)

type Metrics struct {
	registry     *prometheus.Registry
	resolutions  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	elements     *prometheus.CounterVec
	placeholders prometheus.Counter
	requests     *prometheus.CounterVec
}

// New registers the analyzer collectors on a fresh registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Resolved source units by language and result.",
		}, []string{"language", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time spent parsing and resolving one source unit.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"language"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_total",
			Help:      "Resolved elements by kind.",
		}, []string{"kind"}),
		placeholders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placeholders_total",
			Help:      "Constructs that resolved to a placeholder element.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(
		m.resolutions, m.duration, m.elements, m.placeholders, m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveResolve records one resolution. A nil receiver is a no-op.
func (m *Metrics) ObserveResolve(language, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(language, result).Inc()
	m.duration.WithLabelValues(language).Observe(elapsed.Seconds())
}

func (m *Metrics) AddElements(byKind map[string]int, placeholders int) {
	if m == nil {
		return
	}
	for kind, n := range byKind {
		m.elements.WithLabelValues(kind).Add(float64(n))
	}
	m.placeholders.Add(float64(placeholders))
}

func (m *Metrics) ObserveRequest(route, status string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, status).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
