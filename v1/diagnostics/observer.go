package diagnostics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a Reporter that counts internal logging failures by kind.
//
// The counter is registered as:
//
//	openremote_logging_internal_errors_total{kind="open_failure"|...}
//
// Attach it to a channel to make silent degradations (plugin fallback, file
// sink fallback, swallowed configuration errors) visible to monitoring.
type Metrics struct {
	errorsTotal *prometheus.CounterVec
}

// NewMetrics creates the metrics reporter and registers its collector with
// reg. Pass prometheus.DefaultRegisterer for the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "openremote",
				Subsystem: "logging",
				Name:      "internal_errors_total",
				Help:      "Internal logging framework failures by kind.",
			},
			[]string{"kind"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.errorsTotal)
	}

	return m
}

// Report implements Reporter.
func (m *Metrics) Report(kind Kind, _ string, _ error) {
	m.errorsTotal.WithLabelValues(kind.String()).Inc()
}
