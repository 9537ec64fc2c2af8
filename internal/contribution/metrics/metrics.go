package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for the contribution write path. A nil *Metrics is a valid no-op.
type Metrics struct {
	Attributions  *prometheus.CounterVec
	Writes        *prometheus.CounterVec
	EventFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Attributions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nestegg_attribution_outcomes_total",
			Help: "Institution attribution results by outcome (matched, fallback, none)",
		}, []string{"outcome"}),
		Writes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nestegg_contribution_writes_total",
			Help: "Contribution writes by operation (create, update, delete)",
		}, []string{"operation"}),
		EventFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "nestegg_contribution_event_failures_total",
			Help: "Contribution change events that could not be published",
		}),
	}
}

func (m *Metrics) IncrementAttribution(outcome string) {
	if m == nil {
		return
	}
	m.Attributions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementWrite(operation string) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrementEventFailure() {
	if m == nil {
		return
	}
	m.EventFailures.Inc()
}
