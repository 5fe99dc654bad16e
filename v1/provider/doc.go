// Package provider defines the log provider capability and the process-wide
// provider registry.
//
// A Provider is the backend a log facade delegates to: it accepts records,
// routes them to its attached consumers (sinks), and carries the level
// threshold for its hierarchy. Providers are shared process-wide by
// canonical hierarchy name: the first registration for a name creates the
// instance, every later registration returns the same instance, and entries
// are never removed. This mirrors the append-only logger tree of the host
// runtimes this facade fronts.
//
// # Providers and plugins
//
// Alternative backend implementations register a Factory under a Type
// identifier. Registration resolves the requested Type through the factory
// registry; an unknown identifier, a factory error, a factory panic or a
// nil result never reaches the caller: the failure is reported through the
// diagnostics channel and the built-in provider is used instead. A broken
// plugin degrades logging fidelity, it does not crash the application.
//
// The built-in provider is backed by go.uber.org/zap: consumers are zapcore
// cores behind the provider's atomic level, the TEXT_FILE consumer is a
// rotating lumberjack sink rendered through the single-line formatter, and
// STANDARD_OUTPUT is a console core with its own threshold. A KAFKA
// consumer ships formatted records to a Kafka topic for centralized
// collection.
//
// # Consumers
//
// Consumer configuration travels as an opaque string property bag. Missing
// or unparsable numeric and boolean properties fall back to documented
// defaults with a diagnostics report; an unusable file location falls back
// to a log file in the system temporary directory; a file sink that cannot
// be opened falls back to a console sink. Requesting a consumer type a
// provider does not support is a programmer error and fails the call.
package provider
