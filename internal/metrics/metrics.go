// Package metrics holds the Prometheus collectors of the diversification engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Score views
const (
	ViewNominal     = "nominal"
	ViewLookThrough = "look_through"
)

// Registry holds all engine metrics on a private Prometheus registry
type Registry struct {
	registry *prometheus.Registry

	ScoresTotal            *prometheus.CounterVec
	UnclassifiedPositions  prometheus.Counter
	NonDecomposedPositions prometheus.Counter
	ScoreValue             prometheus.Histogram
	RequestDuration        *prometheus.HistogramVec
}

// NewRegistry creates and registers all collectors
func NewRegistry() *Registry {
	m := &Registry{
		registry: prometheus.NewRegistry(),

		ScoresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diversifier_scores_total",
				Help: "Total number of diversification scores computed by view",
			},
			[]string{"view"},
		),

		UnclassifiedPositions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "diversifier_unclassified_positions_total",
				Help: "Positions scored without region or sector",
			},
		),

		NonDecomposedPositions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "diversifier_non_decomposed_total",
				Help: "Composite instruments without registry data",
			},
		),

		ScoreValue: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "diversifier_score_value",
				Help:    "Distribution of total diversification scores",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "diversifier_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"route", "status"},
		),
	}

	m.registry.MustRegister(
		m.ScoresTotal,
		m.UnclassifiedPositions,
		m.NonDecomposedPositions,
		m.ScoreValue,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Gatherer exposes the underlying registry for tests and custom exporters
func (m *Registry) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordScore counts a computed score
func (m *Registry) RecordScore(view string, total float64, unclassified int) {
	m.ScoresTotal.WithLabelValues(view).Inc()
	m.ScoreValue.Observe(total)
	if unclassified > 0 {
		m.UnclassifiedPositions.Add(float64(unclassified))
	}
}

// RecordNonDecomposed counts composite instruments missing from the registry
func (m *Registry) RecordNonDecomposed(count int) {
	if count > 0 {
		m.NonDecomposedPositions.Add(float64(count))
	}
}

// ObserveRequest records the duration of one API request
func (m *Registry) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
