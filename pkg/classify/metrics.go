package classify

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for a classifier: outcome counts by
// confidence kind and label, evaluation latency, and scorer call/error
// counts. Attach a collector with Classifier.WithMetrics; a classifier
// without one records nothing.
type Metrics struct {
	classifications *prometheus.CounterVec
	evalDuration    prometheus.Histogram
	scorerCalls     prometheus.Counter
	scorerErrors    prometheus.Counter
}

// NewMetrics creates and registers the classifier metrics on the given
// registerer. If registerer is nil the default Prometheus registerer is
// used. The namespace defaults to "sentra".
func NewMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "sentra"
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "classify",
				Name:      "results_total",
				Help:      "Classification results by confidence kind and label.",
			},
			[]string{"kind", "label"},
		),
		evalDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "classify",
				Name:      "duration_seconds",
				Help:      "Wall time of classification calls, including scorer calls.",
				// Rule evaluation is microseconds; the scorer call dominates
				// the upper buckets.
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.025, 0.1, 0.5, 2.0, 10.0},
			},
		),
		scorerCalls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "classify",
				Name:      "scorer_calls_total",
				Help:      "Calls made to the external scorer.",
			},
		),
		scorerErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "classify",
				Name:      "scorer_errors_total",
				Help:      "External scorer calls that returned an error.",
			},
		),
	}

	registerer.MustRegister(m.classifications, m.evalDuration, m.scorerCalls, m.scorerErrors)
	return m
}

// Record records one classification result.
func (m *Metrics) Record(result *Result) {
	m.classifications.WithLabelValues(string(result.Kind), string(result.Label)).Inc()
	m.evalDuration.Observe(result.EvaluationTime.Seconds())
}
