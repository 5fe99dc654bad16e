package diagnostics

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// testReporter records reports for assertions.
type testReporter struct {
	mu      sync.Mutex
	reports []Kind
}

func (r *testReporter) Report(kind Kind, _ string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, kind)
}

func TestChannelFansOutToAllReporters(t *testing.T) {
	first := &testReporter{}
	second := &testReporter{}

	c := NewChannel(first)
	c.Attach(second)

	c.Report(OpenFailure, "cannot open file sink", errors.New("permission denied"))

	if len(first.reports) != 1 || first.reports[0] != OpenFailure {
		t.Fatalf("first reporter got %v", first.reports)
	}
	if len(second.reports) != 1 || second.reports[0] != OpenFailure {
		t.Fatalf("second reporter got %v", second.reports)
	}
}

func TestNilChannelDropsReports(t *testing.T) {
	var c *Channel

	// Must not panic.
	c.Report(FormatFailure, "dropped", nil)
}

func TestWriterReporterIncludesKindAndCause(t *testing.T) {
	var buf bytes.Buffer

	r := NewWriterReporter(&buf)
	r.Report(FormatFailure, "bad backup count 'x'", errors.New("parse error"))

	out := buf.String()
	if !strings.Contains(out, "format_failure") {
		t.Fatalf("missing kind label in %q", out)
	}
	if !strings.Contains(out, "bad backup count 'x'") {
		t.Fatalf("missing message in %q", out)
	}
	if !strings.Contains(out, "parse error") {
		t.Fatalf("missing cause in %q", out)
	}
}

func TestWriterReporterWithoutCause(t *testing.T) {
	var buf bytes.Buffer

	NewWriterReporter(&buf).Report(GenericFailure, "oops", nil)

	if strings.Contains(buf.String(), "(") {
		t.Fatalf("unexpected cause suffix in %q", buf.String())
	}
}

func TestMetricsCountsByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Report(OpenFailure, "one", nil)
	m.Report(OpenFailure, "two", nil)
	m.Report(WriteFailure, "three", nil)

	if got := testutil.ToFloat64(m.errorsTotal.WithLabelValues("open_failure")); got != 2 {
		t.Fatalf("open_failure count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.errorsTotal.WithLabelValues("write_failure")); got != 1 {
		t.Fatalf("write_failure count = %v, want 1", got)
	}
}

func TestKindLabels(t *testing.T) {
	tests := map[Kind]string{
		GenericFailure: "generic_failure",
		OpenFailure:    "open_failure",
		FormatFailure:  "format_failure",
		WriteFailure:   "write_failure",
		Kind(42):       "generic_failure",
	}

	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
