package provider

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/format"
	"github.com/openremote/logging/v1/record"
)

// recordFieldKey is the zap field under which the original record travels
// from the provider's Log call into the sink cores.
const recordFieldKey = "_logging_record"

// recordFrom recovers the record attached by the provider. Entries written
// without one (for instance through a raw zap handle) are reconstructed
// from the entry itself.
func recordFrom(ent zapcore.Entry, fields []zapcore.Field) record.Record {
	for _, f := range fields {
		if f.Key != recordFieldKey {
			continue
		}
		if r, ok := f.Interface.(record.Record); ok {
			return r
		}
	}

	return record.Record{
		Time:    ent.Time,
		Level:   record.Level(ent.Level),
		Message: ent.Message,
	}
}

// sinkCore is a zapcore.Core that renders records through the single-line
// formatter onto a write syncer. File and console consumers are sinkCores
// over different syncers and level enablers.
type sinkCore struct {
	zapcore.LevelEnabler

	out       zapcore.WriteSyncer
	formatter *format.SingleLineFormatter
	diag      *diagnostics.Channel
}

func newSinkCore(out zapcore.WriteSyncer, enab zapcore.LevelEnabler) *sinkCore {
	return &sinkCore{
		LevelEnabler: enab,
		out:          out,
		formatter:    format.NewSingleLineFormatter(),
		diag:         diagnostics.Default(),
	}
}

// newConsoleCore builds a standard output sink with its own threshold.
func newConsoleCore(level record.Level) *sinkCore {
	return newSinkCore(zapcore.Lock(os.Stdout), levelEnabler(level))
}

// levelEnabler converts a facade level into a zapcore enabler.
func levelEnabler(level record.Level) zapcore.LevelEnabler {
	threshold := level.ZapLevel()

	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= threshold
	})
}

// With implements zapcore.Core. Structured context does not change how
// records render, so the core is returned unchanged.
func (c *sinkCore) With([]zapcore.Field) zapcore.Core { return c }

// Check implements zapcore.Core.
func (c *sinkCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// Write implements zapcore.Core. A sink write failure is reported through
// diagnostics; it never propagates to the logging caller.
func (c *sinkCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	r := recordFrom(ent, fields)

	if _, err := c.out.Write([]byte(c.formatter.Format(r))); err != nil {
		c.diag.Report(diagnostics.WriteFailure, "Cannot write log record to sink.", err)
	}

	return nil
}

// Sync implements zapcore.Core.
func (c *sinkCore) Sync() error { return c.out.Sync() }
