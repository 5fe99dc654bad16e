// Package format renders log records into the single-line text layout used
// by the file and console sinks.
//
// Each record starts with a UTC timestamp, the level name and the message:
//
//	[2014/07/01 15:04:05.123 UTC] SEVERE: lost device connection
//
// When a cause is attached, a short form of the nested error chain follows,
// innermost (root) error first, then the call stack of the root error with
// frames from this system's own packages marked with "-> ", and an
// abbreviated stack for each wrapping error. This layout is consumed by
// humans and log scrapers alike and is a fixed external contract, literal
// labels (MESSAGE:, CALLSTACK:, Wrapped by:) included.
//
// The formatter never fails: malformed message templates degrade to a
// "[FORMATTING ERROR]" line with the original template, cyclic cause chains
// are cut off after a bounded number of hops, and any internal panic is
// contained and replaced with a "Log Implementation Error:" line. A
// formatter that fails would take the host logging runtime down with it.
package format
