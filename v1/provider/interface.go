package provider

import (
	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/record"
)

// ConsumerType names the kinds of log consumers (sinks) a provider may
// support.
type ConsumerType int

const (
	// TextFile is a rotating text file sink.
	TextFile ConsumerType = iota

	// XMLFile is reserved; no provider implements it.
	XMLFile

	// StandardOutput is a console sink on the standard output stream.
	StandardOutput

	// Kafka ships formatted records to a Kafka topic.
	Kafka
)

// String returns the configuration-facing consumer type name.
func (t ConsumerType) String() string {
	switch t {
	case TextFile:
		return "TEXT_FILE"
	case XMLFile:
		return "XML_FILE"
	case StandardOutput:
		return "STANDARD_OUTPUT"
	case Kafka:
		return "KAFKA"
	default:
		return "UNKNOWN"
	}
}

// ConsumerConfiguration is an opaque property bag attached when adding a
// log consumer. Concrete shapes (file, console, kafka) wrap it with typed
// accessors that apply documented defaults instead of failing.
type ConsumerConfiguration interface {
	SetProperty(name, value string)
	Property(name string) string
}

// Handler receives every record a provider accepts, before sink formatting.
// Handlers exist for programmatic consumers such as tests and in-process
// monitors; configured output destinations are consumers.
type Handler interface {
	Publish(r record.Record)
}

// Provider is the capability every logging backend must satisfy. All the
// logging operations of a facade eventually delegate here.
//
// Implementations must be safe for concurrent use; logging calls are
// synchronous, fire-and-forget and must never panic toward the caller.
type Provider interface {
	// Hierarchy returns the hierarchy the provider was registered under.
	Hierarchy() hierarchy.Hierarchy

	// Log delivers one record to the attached handlers and consumers,
	// subject to the provider level threshold.
	Log(r record.Record)

	// AddLogConsumer attaches a sink of the given type. Unsupported
	// consumer types fail with ErrUnsupportedConsumer; environmental
	// failures (unopenable file, bad numeric properties) degrade to a
	// fallback sink and report through diagnostics instead.
	AddLogConsumer(consumerType ConsumerType, config ConsumerConfiguration) error

	// LoadConfiguration bulk-applies key/value settings. Parse errors
	// are reported through diagnostics, never returned.
	LoadConfiguration(properties map[string]string)

	// AddHandler attaches a programmatic record handler.
	AddHandler(h Handler)

	// SetUseRootHandlers controls whether records are also delivered to
	// the process-wide root handlers (default true).
	SetUseRootHandlers(use bool)

	SetLevel(l record.Level)
	Level() record.Level

	// Sync flushes buffered sink output.
	Sync() error

	// Close flushes and releases sink resources. Registry entries stay;
	// Close is for process shutdown.
	Close() error
}
