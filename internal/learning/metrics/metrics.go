package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the learning module.
type Metrics struct {
	// Completed training runs by scope.
	Runs *prometheus.CounterVec

	// Weight sets appended by scope.
	SetsWritten *prometheus.CounterVec

	// Roles skipped for insufficient outcome samples.
	RolesSkipped prometheus.Counter

	// Full training-pass latency.
	TrainLatency prometheus.Histogram
}

// New creates a Metrics instance with all learning metrics registered.
func New() *Metrics {
	return &Metrics{
		Runs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewfit_learning_runs_total",
			Help: "Completed training runs by scope",
		}, []string{"scope"}),

		SetsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewfit_learning_weight_sets_total",
			Help: "Weight set versions appended by scope",
		}, []string{"scope"}),

		RolesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crewfit_learning_roles_skipped_total",
			Help: "Roles skipped during training for insufficient samples",
		}),

		TrainLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crewfit_learning_train_duration_seconds",
			Help:    "Duration of one training pass",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15},
		}),
	}
}

// ObserveRun records one completed training pass.
func (m *Metrics) ObserveRun(scope string, setsWritten, rolesSkipped int, d time.Duration) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(scope).Inc()
	m.SetsWritten.WithLabelValues(scope).Add(float64(setsWritten))
	m.RolesSkipped.Add(float64(rolesSkipped))
	m.TrainLatency.Observe(d.Seconds())
}
