package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/logservice"
	"github.com/openremote/logging/v1/record"
)

// Logger is the leveled facade. It embeds the log service, so the full
// operation set (consumers, thresholds, handlers) stays available on the
// logger itself.
type Logger struct {
	*logservice.LogService
}

// New creates a leveled logger for the given category, registered through
// the log service.
func New(category hierarchy.Hierarchy) *Logger {
	return &Logger{LogService: logservice.New(category)}
}

// Wrap builds a leveled facade around an existing log service.
func Wrap(s *logservice.LogService) *Logger {
	return &Logger{LogService: s}
}

// Error logs at SEVERE.
func (l *Logger) Error(msg string, args ...interface{}) { l.log(record.Severe, msg, args) }

// Warn logs at WARNING.
func (l *Logger) Warn(msg string, args ...interface{}) { l.log(record.Warning, msg, args) }

// Info logs at INFO.
func (l *Logger) Info(msg string, args ...interface{}) { l.log(record.Info, msg, args) }

// Debug logs at FINE.
func (l *Logger) Debug(msg string, args ...interface{}) { l.log(record.Fine, msg, args) }

// Trace logs at FINER.
func (l *Logger) Trace(msg string, args ...interface{}) { l.log(record.Finer, msg, args) }

// ErrorWithContext logs at SEVERE with trace correlation fields from ctx.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, args ...interface{}) {
	l.logWithContext(ctx, record.Severe, msg, args)
}

// WarnWithContext logs at WARNING with trace correlation fields from ctx.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, args ...interface{}) {
	l.logWithContext(ctx, record.Warning, msg, args)
}

// InfoWithContext logs at INFO with trace correlation fields from ctx.
func (l *Logger) InfoWithContext(ctx context.Context, msg string, args ...interface{}) {
	l.logWithContext(ctx, record.Info, msg, args)
}

// DebugWithContext logs at FINE with trace correlation fields from ctx.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, args ...interface{}) {
	l.logWithContext(ctx, record.Fine, msg, args)
}

// TraceWithContext logs at FINER with trace correlation fields from ctx.
func (l *Logger) TraceWithContext(ctx context.Context, msg string, args ...interface{}) {
	l.logWithContext(ctx, record.Finer, msg, args)
}

func (l *Logger) log(level record.Level, msg string, args []interface{}) {
	if l == nil {
		return
	}

	cause, params := splitCause(args)
	l.Log(level, msg, params, cause)
}

func (l *Logger) logWithContext(ctx context.Context, level record.Level, msg string, args []interface{}) {
	if l == nil {
		return
	}

	cause, params := splitCause(args)

	r := record.Record{
		Level:   level,
		Message: msg,
		Params:  params,
		Cause:   cause,
		Fields:  traceFields(ctx),
	}

	l.LogRecord(r)
}

// splitCause separates a leading error from the positional parameters. A
// nil error interface value at the front is treated as an absent cause,
// matching the two-argument call shape log.Error(msg, err).
func splitCause(args []interface{}) (error, []interface{}) {
	if len(args) == 0 {
		return nil, nil
	}

	if args[0] == nil {
		return nil, args[1:]
	}

	if cause, ok := args[0].(error); ok {
		return cause, args[1:]
	}

	return nil, args
}

// traceFields extracts trace correlation fields from the active span, if
// any.
func traceFields(ctx context.Context) []record.Field {
	if ctx == nil {
		return nil
	}

	span := trace.SpanContextFromContext(ctx)
	if !span.IsValid() {
		return nil
	}

	return []record.Field{
		{Key: "trace_id", Value: span.TraceID().String()},
		{Key: "span_id", Value: span.SpanID().String()},
	}
}
