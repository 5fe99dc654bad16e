package format

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/openremote/logging/v1/record"
)

// DefaultSystemPrefix marks stack frames that originate from this system's
// own packages. Such frames are prefixed with "-> " in call stack output.
const DefaultSystemPrefix = "github.com/openremote"

// maxCauseDepth bounds the cause chain walk so a cyclic cause graph cannot
// loop the formatter. The walk is silently truncated at this depth.
const maxCauseDepth = 100

// SingleLineFormatter renders records in the server-side text layout
// documented on the package. The zero value is usable and equivalent to
// NewSingleLineFormatter().
type SingleLineFormatter struct {
	// SystemPrefix overrides DefaultSystemPrefix when non-empty.
	SystemPrefix string
}

// NewSingleLineFormatter returns a formatter with the default in-system
// frame prefix.
func NewSingleLineFormatter() *SingleLineFormatter {
	return &SingleLineFormatter{}
}

// Format renders one record. It never panics; an internal failure is
// replaced with a "Log Implementation Error:" line.
func (f *SingleLineFormatter) Format(r record.Record) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = fmt.Sprintf("Log Implementation Error: %v", rec)
		}
	}()

	var b strings.Builder
	b.Grow(200)

	utc := r.Time.UTC()

	fmt.Fprintf(&b, "[%s.%d UTC] ", utc.Format("2006/01/02 15:04:05"), utc.Nanosecond()/1e6)
	b.WriteString(r.Level.String())
	b.WriteString(": ")
	b.WriteString(FormatMessage(r.Message, r.Params))

	for _, field := range r.Fields {
		fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
	}

	b.WriteString("\n")

	causes := resolveNestedCauses(r.Cause)
	if len(causes) == 0 {
		return b.String()
	}

	b.WriteString(f.printNestedCausesShortForm(causes))
	b.WriteString(f.printStackTraces(causes, r.CallSite))

	return b.String()
}

// resolveNestedCauses orders a cause chain into a list with the innermost,
// original error at the first index. The walk follows errors.Unwrap and is
// bounded at maxCauseDepth hops.
func resolveNestedCauses(outer error) []error {
	if outer == nil {
		return nil
	}

	causes := []error{outer}
	nested := errors.Unwrap(outer)

	for count := 0; nested != nil && count < maxCauseDepth; count++ {
		causes = append([]error{nested}, causes...)
		nested = errors.Unwrap(nested)
	}

	return causes
}

// printNestedCausesShortForm emphasizes the error messages over the call
// stacks: the root error first, then one "Wrapped by" entry per wrapping
// error, outermost last.
func (f *SingleLineFormatter) printNestedCausesShortForm(causes []error) string {
	var b strings.Builder
	b.Grow(1000)

	root := causes[0]

	if len(causes) == 1 {
		b.WriteString("\nEXCEPTION: ")
		b.WriteString(typeName(root))
		b.WriteString("\n  MESSAGE: ")
		b.WriteString(errorMessage(root))
		b.WriteString("\n")

		return b.String()
	}

	b.WriteString("\nROOT EXCEPTION: ")
	b.WriteString(typeName(root))
	b.WriteString("\n       MESSAGE: ")
	b.WriteString(errorMessage(root))

	for _, wrapper := range causes[1:] {
		b.WriteString("                Wrapped by: ")
		b.WriteString(typeName(wrapper))
		b.WriteString("\n                   Message: ")
		b.WriteString(errorMessage(wrapper))
	}

	return b.String()
}

// printStackTraces renders the full stack of the innermost error and an
// abbreviated top of stack for each wrapping error. When the innermost
// error carries no stack of its own, the stack captured at the logging call
// site stands in.
func (f *SingleLineFormatter) printStackTraces(causes []error, callSite []record.Frame) string {
	var b strings.Builder
	b.Grow(1000)

	b.WriteString("CALLSTACK: ")
	b.WriteString(typeName(causes[0]))
	b.WriteString("\n")

	rootFrames := stackFrames(causes[0])
	if rootFrames == nil {
		rootFrames = callSite
	}

	for _, frame := range rootFrames {
		b.WriteString("  ")
		b.WriteString(f.frameMarker(frame))
		b.WriteString(frame.String())
		b.WriteString("\n")
	}

	for _, wrapper := range causes[1:] {
		b.WriteString("\n       Wrapped by : ")
		b.WriteString(typeName(wrapper))
		b.WriteString("\n")

		// Only the top of a wrapper stack is shown: the first frame, or
		// the first three plus an ellipsis when the stack is deeper.
		frames := stackFrames(wrapper)
		abbreviated := len(frames) >= 3

		if abbreviated {
			frames = frames[:3]
		} else if len(frames) > 1 {
			frames = frames[:1]
		}

		for _, frame := range frames {
			b.WriteString("         ")
			b.WriteString(f.frameMarker(frame))
			b.WriteString(frame.String())
			b.WriteString("\n")
		}

		if abbreviated {
			b.WriteString("         ...\n")
		}
	}

	return b.String()
}

func (f *SingleLineFormatter) frameMarker(frame record.Frame) string {
	prefix := f.SystemPrefix
	if prefix == "" {
		prefix = DefaultSystemPrefix
	}

	if strings.HasPrefix(frame.Function, prefix) {
		return "-> "
	}

	return "     "
}

// stackTracer is the stack-carrying error contract popularized by
// github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// stackFrames extracts the stack recorded on the error itself, or nil when
// the error carries none. Only the error's own stack is consulted; wrapped
// errors keep their individual stacks.
func stackFrames(err error) []record.Frame {
	st, ok := err.(stackTracer)
	if !ok {
		return nil
	}

	trace := st.StackTrace()
	pcs := make([]uintptr, len(trace))

	for i, frame := range trace {
		pcs[i] = uintptr(frame)
	}

	return record.FramesFromPCs(pcs)
}

// errorMessage returns the error text followed by the blank separator line
// the short form uses, or the "<no message>" placeholder.
func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg + "\n\n"
	}

	return "<no message>\n\n"
}

// typeName returns the unqualified type name of the error value, the analog
// of a class simple name in the original layout.
func typeName(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}
