// Package diagnostics is the process-wide channel for errors that occur
// inside the logging framework itself.
//
// The logging API guarantees that logging calls never fail the caller:
// plugin-load failures, file sink open failures and configuration parse
// errors are degraded to a safe fallback and reported here instead of being
// raised. This package is where those reports go.
//
// By default reports are written to standard error. Additional reporters can
// be attached, for example the Prometheus Metrics reporter which counts
// internal failures by kind:
//
//	m := diagnostics.NewMetrics(prometheus.DefaultRegisterer)
//	diagnostics.Default().Attach(m)
//
// Reporters must never log through the facade they observe; that would
// recurse.
package diagnostics
