// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Audit results recorded in AuditsTotal.
const (
	ResultFresh  = "fresh"
	ResultCached = "cached"
	ResultError  = "error"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuditsTotal         *prometheus.CounterVec
	AuditDuration       prometheus.Histogram
	OverallScore        prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers every collector on reg. Passing nil uses a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seo_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuditsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_audits_total",
				Help: "Total number of article audits by result.",
			},
			[]string{"result"}, // fresh, cached, error
		),
		AuditDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seo_audit_duration_seconds",
				Help:    "Duration of uncached article audits.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		OverallScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seo_overall_score",
				Help:    "Distribution of overall SEO scores.",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
