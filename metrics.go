package symvalidation

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts classifications and validation outcomes. A nil *Metrics
// records nothing.
type Metrics struct {
	classifications *prometheus.CounterVec
	validations     *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symvalidation",
			Name:      "classifications_total",
			Help:      "Schema classifications by entity and result.",
		}, []string{"entity", "result"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symvalidation",
			Name:      "validations_total",
			Help:      "Validation calls by entity and outcome.",
		}, []string{"entity", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.classifications, m.validations)
	}
	return m
}

func (m *Metrics) classified(entity string, c Classification) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(entity, c.Kind.String()).Inc()
}

func (m *Metrics) validated(entity, outcome string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(entity, outcome).Inc()
}

func outcomeOf(err error) string {
	var (
		cv *ConstraintViolation
		ve ValidationErrors
	)
	switch {
	case err == nil:
		return outcomeAccepted
	case errors.Is(err, ErrUnsatisfiable):
		return outcomeContradiction
	case errors.As(err, &cv), errors.As(err, &ve):
		return outcomeRejected
	}
	return outcomeError
}
