package dispatcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dshills/helixedit/internal/operation"
)

// Metrics records operation statistics on a Prometheus registry.
// A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the dispatcher metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "helixedit",
			Name:      "operations_total",
			Help:      "Applied operations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "helixedit",
			Name:      "operation_errors_total",
			Help:      "Rejected operations by kind and error class.",
		}, []string{"kind", "class"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "helixedit",
			Name:      "operation_duration_seconds",
			Help:      "Time spent applying an operation.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"kind"}),
	}
}

// Observe records one operation. err takes precedence over outcome.
func (m *Metrics) Observe(kind operation.Kind, outcome OutcomeKind, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	k := kind.String()
	m.duration.WithLabelValues(k).Observe(elapsed.Seconds())
	if err != nil {
		m.errors.WithLabelValues(k, Classify(err).String()).Inc()
		return
	}
	m.operations.WithLabelValues(k, outcome.String()).Inc()
}
