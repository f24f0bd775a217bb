// Package metric provides Prometheus metrics for HashREST.
package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "hashrest"

// Search outcomes.
const (
	OutcomeFound    = "found"
	OutcomeCanceled = "canceled"
	OutcomeInvalid  = "invalid"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	Searches        *prometheus.CounterVec
	SearchAttempts  *prometheus.HistogramVec
	SearchDuration  *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with all HashREST metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pow",
			Name:      "searches_total",
			Help:      "Proof-of-work searches by outcome.",
		}, []string{"outcome"}),
		// Expected attempts grow as 16^d; one bucket per difficulty step.
		SearchAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pow",
			Name:      "attempts",
			Help:      "Hashes computed per successful search.",
			Buckets:   prometheus.ExponentialBuckets(1, 16, 8),
		}, []string{"difficulty"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pow",
			Name:      "search_duration_seconds",
			Help:      "Wall time per proof-of-work search.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"difficulty"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests sent by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time per request, excluding token search.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	r.registry.MustRegister(
		r.Searches,
		r.SearchAttempts,
		r.SearchDuration,
		r.RequestsTotal,
		r.RequestDuration,
		NewCollector(),
		collectors.NewGoCollector(),
	)
	return r
}

// Gatherer returns the underlying gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveSearch records one search. Attempts and duration are only
// recorded for found tokens.
func (r *Registry) ObserveSearch(outcome string, difficulty int, attempts uint64, elapsed time.Duration) {
	r.Searches.WithLabelValues(outcome).Inc()
	if outcome != OutcomeFound {
		return
	}
	d := strconv.Itoa(difficulty)
	r.SearchAttempts.WithLabelValues(d).Observe(float64(attempts))
	r.SearchDuration.WithLabelValues(d).Observe(elapsed.Seconds())
}

// ObserveRequest records one request. A code of zero means the request
// failed before a response arrived.
func (r *Registry) ObserveRequest(endpoint string, code int, elapsed time.Duration) {
	c := "error"
	if code > 0 {
		c = strconv.Itoa(code)
	}
	r.RequestsTotal.WithLabelValues(endpoint, c).Inc()
	r.RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// WriteFile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Registry) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
