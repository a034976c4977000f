// Package metrics defines the Prometheus metrics exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Validation kinds.
const (
	KindFull    = "full"
	KindPartial = "partial"
)

// Suggestion outcomes.
const (
	SuggestionOffered = "offered"
	SuggestionNone    = "none"
)

// Metrics holds the application collectors and the registry they belong to.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Validations  *prometheus.CounterVec
	Suggestions  *prometheus.CounterVec
	StoreErrors  *prometheus.CounterVec
	ReportsSent  *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates a registry with Go and process collectors plus the
// application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iban_validations_total",
			Help: "IBAN validations by kind and resulting status",
		}, []string{"kind", "status"}), // kind: "full", "partial"

		Suggestions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iban_suggestions_total",
			Help: "Correction suggestions computed for invalid IBANs",
		}, []string{"outcome"}),

		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iban_store_errors_total",
			Help: "Failed record store operations",
		}, []string{"operation"}),

		ReportsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iban_reports_total",
			Help: "Validation summary reports by outcome",
		}, []string{"outcome"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncValidation(kind, status string) {
	if m != nil {
		m.Validations.WithLabelValues(kind, status).Inc()
	}
}

func (m *Metrics) IncSuggestion(offered bool) {
	if m == nil {
		return
	}
	outcome := SuggestionNone
	if offered {
		outcome = SuggestionOffered
	}
	m.Suggestions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncStoreError(operation string) {
	if m != nil {
		m.StoreErrors.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) IncReport(outcome string) {
	if m != nil {
		m.ReportsSent.WithLabelValues(outcome).Inc()
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
