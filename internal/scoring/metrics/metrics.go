package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the scoring module.
type Metrics struct {
	// Evaluations by regime and final label.
	Evaluations *prometheus.CounterVec

	// Mismatch annotations by level.
	Mismatches *prometheus.CounterVec

	// Candidates skipped during batch ranking due to scoring failures.
	BatchSkipped prometheus.Counter

	// Full evaluation latency including pillar computation.
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all scoring metrics registered.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewfit_scoring_evaluations_total",
			Help: "Total candidate evaluations by regime and label",
		}, []string{"regime", "label"}),

		Mismatches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewfit_scoring_role_mismatches_total",
			Help: "Role mismatch annotations by severity level",
		}, []string{"level"}),

		BatchSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crewfit_scoring_batch_skipped_total",
			Help: "Candidates excluded from batch rankings after scoring failures",
		}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crewfit_scoring_evaluate_duration_seconds",
			Help:    "Duration of one candidate evaluation",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementEvaluation records a completed evaluation.
func (m *Metrics) IncrementEvaluation(regime, label string) {
	if m != nil {
		m.Evaluations.WithLabelValues(regime, label).Inc()
	}
}

// IncrementMismatch records a mismatch annotation.
func (m *Metrics) IncrementMismatch(level string) {
	if m != nil {
		m.Mismatches.WithLabelValues(level).Inc()
	}
}

// IncrementBatchSkipped records a candidate dropped from a batch.
func (m *Metrics) IncrementBatchSkipped() {
	if m != nil {
		m.BatchSkipped.Inc()
	}
}

// ObserveEvaluateLatency records one evaluation's duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
