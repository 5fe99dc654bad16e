package diagnostics

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Channel fans internal failure reports out to the attached reporters.
// The zero value is not usable; use NewChannel or the process-wide Default.
type Channel struct {
	mu        sync.Mutex
	reporters []Reporter
}

// defaultChannel is the process-wide channel used by the framework packages.
var defaultChannel = NewChannel(NewWriterReporter(os.Stderr))

// Default returns the process-wide diagnostics channel.
func Default() *Channel {
	return defaultChannel
}

// NewChannel creates a channel with the given initial reporters.
func NewChannel(reporters ...Reporter) *Channel {
	return &Channel{reporters: reporters}
}

// Attach adds a reporter to the channel.
func (c *Channel) Attach(r Reporter) {
	if r == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.reporters = append(c.reporters, r)
}

// Report forwards an internal failure to every attached reporter. A nil
// channel drops the report, so framework code can report unconditionally.
func (c *Channel) Report(kind Kind, msg string, cause error) {
	if c == nil {
		return
	}

	c.mu.Lock()
	reporters := make([]Reporter, len(c.reporters))
	copy(reporters, c.reporters)
	c.mu.Unlock()

	for _, r := range reporters {
		r.Report(kind, msg, cause)
	}
}

// WriterReporter writes reports as single lines to an io.Writer. Write
// errors are ignored; there is nowhere left to report them.
type WriterReporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterReporter creates a reporter writing to out.
func NewWriterReporter(out io.Writer) *WriterReporter {
	return &WriterReporter{out: out}
}

// Report implements Reporter.
func (w *WriterReporter) Report(kind Kind, msg string, cause error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if cause != nil {
		fmt.Fprintf(w.out, "LOGGING [%s]: %s (%v)\n", kind, msg, cause)
	} else {
		fmt.Fprintf(w.out, "LOGGING [%s]: %s\n", kind, msg)
	}
}
