// Package metrics defines the Prometheus metric collectors used across the
// generator and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the generator.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	LookupsTotal         *prometheus.CounterVec
	LookupDuration       *prometheus.HistogramVec
	WordsSkippedTotal    *prometheus.CounterVec
	CloudsBuiltTotal     *prometheus.CounterVec
	CloudBuildDuration   *prometheus.HistogramVec
	CloudWordCount       *prometheus.HistogramVec
}

// New creates all collectors and registers them with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all collectors and registers them with reg. Tests pass a
// private registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "word_lookups_total",
				Help: "Total word service lookups by service and outcome.",
			},
			[]string{"service", "outcome"},
		),
		LookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "word_lookup_duration_seconds",
				Help:    "Word service lookup latency in seconds.",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"service"},
		),
		WordsSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enrichment_words_skipped_total",
				Help: "Words dropped or zero-scored during enrichment, by service and reason.",
			},
			[]string{"service", "reason"},
		),
		CloudsBuiltTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clouds_built_total",
				Help: "Cloud build attempts by cloud name and status.",
			},
			[]string{"cloud", "status"},
		),
		CloudBuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cloud_build_duration_seconds",
				Help:    "End-to-end cloud build latency in seconds, enrichment included.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"cloud"},
		),
		CloudWordCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cloud_word_count",
				Help:    "Number of words rendered per cloud.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
			[]string{"cloud"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.LookupsTotal,
		m.LookupDuration,
		m.WordsSkippedTotal,
		m.CloudsBuiltTotal,
		m.CloudBuildDuration,
		m.CloudWordCount,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
