// Package metrics exposes the service's Prometheus collectors. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mealdelivery"

type Metrics struct {
	registry *prometheus.Registry

	payments      *prometheus.CounterVec
	advanced      *prometheus.CounterVec
	advanceMS     prometheus.Histogram
	cache         *prometheus.CounterVec
	published     *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpLatencyMS *prometheus.HistogramVec
}

// New registers every collector on a private registry, so several instances
// can live in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "payments_total",
			Help:      "Committed payment attempts by outcome.",
		}, []string{"outcome"}),
		advanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_advances_total",
			Help:      "Orders handled by the batch status run, by result.",
		}, []string{"result"}),
		advanceMS: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_run_duration_ms",
			Help:      "Duration of one batch status run in milliseconds.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prices",
			Name:      "cache_lookups_total",
			Help:      "Price list cache lookups by result.",
		}, []string{"result"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Published event batches by topic and status.",
		}, []string{"topic", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		httpLatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
	}

	m.registry.MustRegister(m.payments, m.advanced, m.advanceMS, m.cache, m.published,
		m.httpRequests, m.httpLatencyMS)
	return m
}

func (m *Metrics) ObservePayment(outcome string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveAdvance(advanced, failed, skipped int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.advanced.WithLabelValues("advanced").Add(float64(advanced))
	m.advanced.WithLabelValues("failed").Add(float64(failed))
	m.advanced.WithLabelValues("skipped").Add(float64(skipped))
	m.advanceMS.Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

func (m *Metrics) ObservePublish(topic string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.published.WithLabelValues(topic, status).Inc()
}

func (m *Metrics) ObserveHTTP(handler string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.httpLatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
