package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for balance recomputation. A nil *Metrics is a valid no-op.
type Metrics struct {
	RecomputeDuration  prometheus.Histogram
	Recomputes         *prometheus.CounterVec
	DuplicateSnapshots prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nestegg_balance_recompute_duration_seconds",
			Help:    "Time to rebuild a user's balance snapshot, including lock wait",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		Recomputes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nestegg_balance_recomputes_total",
			Help: "Balance recomputes by result (created, updated, skipped_empty, failed)",
		}, []string{"result"}),
		DuplicateSnapshots: factory.NewCounter(prometheus.CounterOpts{
			Name: "nestegg_balance_duplicate_snapshots_total",
			Help: "Recomputes that found more than one snapshot for a user",
		}),
	}
}

func (m *Metrics) ObserveRecompute(start time.Time, result string) {
	if m == nil {
		return
	}
	m.RecomputeDuration.Observe(time.Since(start).Seconds())
	m.Recomputes.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementDuplicateSnapshots() {
	if m == nil {
		return
	}
	m.DuplicateSnapshots.Inc()
}
