package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Transitions   *prometheus.CounterVec
	StorageCycles *prometheus.CounterVec
	ErrorsCount   *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg. Pass a
// fresh registry in tests to avoid duplicate registration.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_transitions_total",
			Help:      "Appointment workflow transitions by operation and outcome",
		}, []string{"operation", "outcome"}),
		StorageCycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_cycles_total",
			Help:      "Read-modify-write cycles per collection",
		}, []string{"collection"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// Transition records a workflow transition outcome.
func (m *Metrics) Transition(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Transitions.WithLabelValues(operation, outcome).Inc()
}
