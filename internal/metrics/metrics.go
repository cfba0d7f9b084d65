// Package metrics exposes Prometheus instrumentation for connection resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pathfinder"

var (
	// recommendationsTotal counts emitted recommendations.
	// Labels: type (mutual, direct_similarity, intermediary, cold_similarity, none)
	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "recommendations_total",
		Help:      "Recommendations emitted by variant",
	}, []string{"type"})

	// graphErrorsTotal counts graph calls that failed, timed out or panicked.
	// Labels: operation, reason (error, timeout, panic)
	graphErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "graph",
		Name:      "errors_total",
		Help:      "Graph calls that degraded the cascade",
	}, []string{"operation", "reason"})

	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "duration_seconds",
		Help:      "Time to resolve one source/target pair",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	// sampledConnections tracks working-set sizes handed to the intermediary finder.
	// Labels: strategy (none, relevance, hash)
	sampledConnections = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sampling",
		Name:      "connections",
		Help:      "Connections considered for bridge search after sampling",
		Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000},
	}, []string{"strategy"})
)

// RecordRecommendation counts one emitted recommendation of the given type.
func RecordRecommendation(recType string) {
	recommendationsTotal.WithLabelValues(recType).Inc()
}

// RecordGraphError counts a degraded graph call.
func RecordGraphError(operation, reason string) {
	graphErrorsTotal.WithLabelValues(operation, reason).Inc()
}

// RecordResolveDuration records the duration of one resolution in seconds.
func RecordResolveDuration(seconds float64) {
	resolveDuration.Observe(seconds)
}

// RecordSample records the size of a sampled working set.
func RecordSample(strategy string, sampled int) {
	sampledConnections.WithLabelValues(strategy).Observe(float64(sampled))
}
