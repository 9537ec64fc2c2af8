package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for alert derivation. A nil *Metrics is a valid no-op.
type Metrics struct {
	Derived *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Derived: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "nestegg_alerts_derived_total",
			Help: "Alerts produced by derivation, by severity",
		}, []string{"severity"}),
	}
}

func (m *Metrics) IncrementDerived(severity string) {
	if m == nil {
		return
	}
	m.Derived.WithLabelValues(severity).Inc()
}
