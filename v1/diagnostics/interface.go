package diagnostics

// Kind classifies an internal logging failure.
type Kind int

const (
	// GenericFailure is an internal failure that fits no narrower class.
	GenericFailure Kind = iota

	// OpenFailure covers failures to open or construct a log destination:
	// provider plugin loading, file sink creation, configuration loading.
	OpenFailure

	// FormatFailure covers failures to interpret a configured value, such
	// as an unparsable numeric property or file location.
	FormatFailure

	// WriteFailure covers failures to deliver a formatted record to a sink.
	WriteFailure
)

// String returns the label used in reports and metrics.
func (k Kind) String() string {
	switch k {
	case OpenFailure:
		return "open_failure"
	case FormatFailure:
		return "format_failure"
	case WriteFailure:
		return "write_failure"
	default:
		return "generic_failure"
	}
}

// Reporter receives internal logging failures. Implementations must be safe
// for concurrent use and must not call back into the logging facade.
type Reporter interface {
	Report(kind Kind, msg string, cause error)
}
