package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for dashboard composition. A nil *Metrics is a valid no-op.
type Metrics struct {
	Partial        prometheus.Counter
	SectionFailure *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Partial: factory.NewCounter(prometheus.CounterOpts{
			Name: "nestegg_dashboard_partial_total",
			Help: "Dashboards served with at least one failed section",
		}),
		SectionFailure: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nestegg_dashboard_section_failures_total",
			Help: "Dashboard section load failures by section",
		}, []string{"section"}),
	}
}

func (m *Metrics) IncrementPartial() {
	if m == nil {
		return
	}
	m.Partial.Inc()
}

func (m *Metrics) IncrementSectionFailure(section string) {
	if m == nil {
		return
	}
	m.SectionFailure.WithLabelValues(section).Inc()
}
