package record

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"
)

// Record is one log event as handed to a provider. The message is the raw
// template; positional parameter substitution happens in the formatter so a
// malformed template can never fail the logging call itself.
type Record struct {
	// Time is the instant the logging call was made.
	Time time.Time

	// Level is the severity of the event.
	Level Level

	// Message is the message template with positional {0}, {1}, ...
	// placeholders. May be empty.
	Message string

	// Params are the positional substitution values. May be nil, and may
	// contain nil elements.
	Params []interface{}

	// Cause is the error chain attached to the event, or nil.
	Cause error

	// Fields are optional correlation key/value pairs (trace IDs and the
	// like) appended after the message text.
	Fields []Field

	// CallSite is the stack captured at the logging call, used to render
	// a call stack when Cause carries no stack of its own. Nil when no
	// cause was attached.
	CallSite []Frame
}

// Field is a single correlation key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// Frame is one resolved stack frame.
type Frame struct {
	// Function is the fully qualified function name, including the
	// package import path.
	Function string

	File string
	Line int
}

// String renders the frame as function(file:line), the layout the formatter
// prints per stack line.
func (f Frame) String() string {
	return fmt.Sprintf("%s(%s:%d)", f.Function, filepath.Base(f.File), f.Line)
}

// CaptureStack resolves the current goroutine's call stack, skipping the
// given number of frames above the caller of CaptureStack itself.
func CaptureStack(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]Frame, 0, n)

	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}

	return out
}

// FramesFromPCs resolves raw program counters (as carried by stack-aware
// error values) into frames.
func FramesFromPCs(pcs []uintptr) []Frame {
	if len(pcs) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs)
	out := make([]Frame, 0, len(pcs))

	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}

	return out
}
