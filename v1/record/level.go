package record

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the severity of a log record. Greater values are more severe.
type Level int8

const (
	// All enables every record when used as a threshold.
	All Level = -128

	// Finer is the trace level (JUL FINER).
	Finer Level = -2

	// Fine is the debug level (JUL FINE).
	Fine Level = -1

	// Info is the informational level.
	Info Level = 0

	// Warning is the warning level.
	Warning Level = 1

	// Severe is the error level.
	Severe Level = 2

	// Off disables every record when used as a threshold.
	Off Level = 127
)

// String returns the JUL-style level name. This name appears verbatim in the
// formatted output line, so it is part of the external text contract.
func (l Level) String() string {
	switch l {
	case All:
		return "ALL"
	case Finer:
		return "FINER"
	case Fine:
		return "FINE"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Severe:
		return "SEVERE"
	case Off:
		return "OFF"
	default:
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
}

// ZapLevel maps the level onto the host runtime's level scale. Finer has no
// zapcore name and maps below DebugLevel; zapcore enablers compare
// numerically so the mapping stays consistent.
func (l Level) ZapLevel() zapcore.Level {
	switch {
	case l <= All:
		return zapcore.Level(-127)
	case l >= Off:
		return zapcore.Level(126)
	default:
		return zapcore.Level(l)
	}
}

// Enabled reports whether a record at level l passes the given threshold.
func (l Level) Enabled(threshold Level) bool {
	if threshold == Off {
		return false
	}
	return l >= threshold
}

// ParseLevel converts a JUL-style level name into a Level. Parsing is
// case-insensitive. These names arrive through bulk configuration
// properties, which is an external contract.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ALL":
		return All, nil
	case "FINER", "FINEST":
		return Finer, nil
	case "FINE", "CONFIG":
		return Fine, nil
	case "INFO":
		return Info, nil
	case "WARNING":
		return Warning, nil
	case "SEVERE":
		return Severe, nil
	case "OFF":
		return Off, nil
	default:
		return Info, fmt.Errorf("unknown log level %q", name)
	}
}
