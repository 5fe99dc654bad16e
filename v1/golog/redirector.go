package golog

import (
	"fmt"
	"os"
	"sync"

	"github.com/kataras/golog"
	"go.uber.org/multierr"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/format"
	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/provider"
	"github.com/openremote/logging/v1/record"
)

// Redirector identifies this provider in the plugin registry.
var Redirector = provider.NewType("github.com/openremote/logging/v1/golog.Redirector")

func init() {
	provider.RegisterFactory(Redirector, func(h hierarchy.Hierarchy) (provider.Provider, error) {
		return newRedirector(h)
	})
}

// redirector forwards facade records into a dedicated golog logger.
type redirector struct {
	hier hierarchy.Hierarchy
	out  *golog.Logger
	diag *diagnostics.Channel

	mu       sync.Mutex
	level    record.Level
	handlers []provider.Handler
	useRoot  bool
	files    []*os.File
}

func newRedirector(h hierarchy.Hierarchy) (*redirector, error) {
	if h == nil {
		return nil, provider.ErrNilHierarchy
	}

	out := golog.New()
	out.SetLevel(gologLevel(record.Info))

	return &redirector{
		hier:    h,
		out:     out,
		diag:    diagnostics.Default(),
		level:   record.Info,
		useRoot: true,
	}, nil
}

// gologLevel maps a facade level onto golog's level names. FINER has no
// golog counterpart and shares the debug level.
func gologLevel(l record.Level) string {
	switch {
	case l >= record.Off:
		return "disable"
	case l >= record.Severe:
		return "error"
	case l >= record.Warning:
		return "warn"
	case l >= record.Info:
		return "info"
	default:
		return "debug"
	}
}

// Hierarchy implements provider.Provider.
func (p *redirector) Hierarchy() hierarchy.Hierarchy { return p.hier }

// SetLevel implements provider.Provider.
func (p *redirector) SetLevel(l record.Level) {
	p.mu.Lock()
	p.level = l
	p.mu.Unlock()

	p.out.SetLevel(gologLevel(l))
}

// Level implements provider.Provider.
func (p *redirector) Level() record.Level {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.level
}

// AddHandler implements provider.Provider.
func (p *redirector) AddHandler(h provider.Handler) {
	if h == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, h)
}

// SetUseRootHandlers implements provider.Provider.
func (p *redirector) SetUseRootHandlers(use bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.useRoot = use
}

// Log implements provider.Provider.
func (p *redirector) Log(r record.Record) {
	p.mu.Lock()
	if !r.Level.Enabled(p.level) {
		p.mu.Unlock()
		return
	}
	handlers := make([]provider.Handler, len(p.handlers))
	copy(handlers, p.handlers)
	useRoot := p.useRoot
	p.mu.Unlock()

	for _, h := range handlers {
		h.Publish(r)
	}

	if useRoot {
		for _, h := range provider.RootHandlers() {
			h.Publish(r)
		}
	}

	text := format.FormatMessage(r.Message, r.Params)
	if r.Cause != nil {
		text = fmt.Sprintf("%s [caused by: %v]", text, r.Cause)
	}

	switch {
	case r.Level >= record.Severe:
		p.out.Error(text)
	case r.Level >= record.Warning:
		p.out.Warn(text)
	case r.Level >= record.Info:
		p.out.Info(text)
	default:
		p.out.Debug(text)
	}
}

// AddLogConsumer implements provider.Provider. The redirector supports
// plain file and standard output consumers; an unopenable file degrades to
// standard output with a diagnostics report.
func (p *redirector) AddLogConsumer(consumerType provider.ConsumerType, config provider.ConsumerConfiguration) error {
	switch consumerType {
	case provider.TextFile:
		p.addFileOutput(config)
		return nil

	case provider.StandardOutput:
		p.out.AddOutput(os.Stdout)
		return nil

	default:
		return fmt.Errorf("%w: %s", provider.ErrUnsupportedConsumer, consumerType)
	}
}

func (p *redirector) addFileOutput(config provider.ConsumerConfiguration) {
	fileConfig, ok := config.(*provider.FileConfiguration)
	if !ok {
		fileConfig = provider.NewFileConfiguration("")
		if config != nil {
			if value := config.Property(provider.FileIdentifierProperty); value != "" {
				fileConfig.SetProperty(provider.FileIdentifierProperty, value)
			}
			if value := config.Property(provider.FileAppendProperty); value != "" {
				fileConfig.SetProperty(provider.FileAppendProperty, value)
			}
		}
	}

	path := fileConfig.FileIdentifier()

	flags := os.O_CREATE | os.O_WRONLY
	if fileConfig.FileAppend() {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		p.diag.Report(diagnostics.OpenFailure, fmt.Sprintf(
			"Cannot open log file %q. Reverting to console output.", path), err)

		p.out.AddOutput(os.Stdout)

		return
	}

	p.mu.Lock()
	p.files = append(p.files, f)
	p.mu.Unlock()

	p.out.AddOutput(f)
}

// LoadConfiguration implements provider.Provider.
func (p *redirector) LoadConfiguration(properties map[string]string) {
	value, ok := properties["level"]
	if !ok {
		value, ok = properties[".level"]
	}
	if !ok {
		return
	}

	level, err := record.ParseLevel(value)
	if err != nil {
		p.diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
			"Unrecognized level %q for logger %q.", value, p.hier.CanonicalName()), err)

		return
	}

	p.SetLevel(level)
}

// Sync implements provider.Provider.
func (p *redirector) Sync() error {
	p.mu.Lock()
	files := make([]*os.File, len(p.files))
	copy(files, p.files)
	p.mu.Unlock()

	var err error
	for _, f := range files {
		err = multierr.Append(err, f.Sync())
	}

	return err
}

// Close implements provider.Provider.
func (p *redirector) Close() error {
	err := p.Sync()

	p.mu.Lock()
	files := p.files
	p.files = nil
	p.mu.Unlock()

	for _, f := range files {
		err = multierr.Append(err, f.Close())
	}

	return err
}
