package provider

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/format"
	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/record"
)

// registry is the process-wide provider table. Entries are keyed by the
// canonical hierarchy name and are never removed: the first registration
// for a name creates the instance, later registrations return it.
type registry struct {
	mu        sync.Mutex
	providers map[string]Provider

	rootHandlers []Handler
	rootConsole  *consoleHandler

	// configuredLevels holds levels loaded through bulk configuration,
	// keyed by hierarchy name ("" is the root). New registrations inherit
	// from the longest matching dotted prefix.
	configuredLevels map[string]record.Level
}

var defaultRegistry = &registry{
	providers:        make(map[string]Provider),
	configuredLevels: make(map[string]record.Level),
}

// Register returns the provider for the given hierarchy, creating it with
// the requested type on first registration. Registration never fails: a
// type that cannot be loaded degrades to the built-in provider. A later
// registration under the same canonical name returns the existing instance
// regardless of the requested type.
func Register(t Type, h hierarchy.Hierarchy) Provider {
	return defaultRegistry.register(t, h)
}

// RegisterDefault registers with the process default provider type.
func RegisterDefault(h hierarchy.Hierarchy) Provider {
	return defaultRegistry.register(DefaultType(), h)
}

// Registered returns the provider already registered under the hierarchy's
// canonical name, if any.
func Registered(h hierarchy.Hierarchy) (Provider, bool) {
	return defaultRegistry.registered(h)
}

// AddRootHandler attaches a handler that receives records from every
// provider that has not opted out with SetUseRootHandlers(false).
func AddRootHandler(h Handler) {
	defaultRegistry.addRootHandler(h)
}

// AddRootConsoleOutput installs (or replaces) the process-wide console
// handler at the given threshold level. Every provider delegating to root
// handlers gets console output without configuring its own consumer.
func AddRootConsoleOutput(level record.Level) {
	defaultRegistry.setRootConsole(os.Stdout, level)
}

// LoadConfiguration bulk-applies runtime-style configuration properties:
//
//	handlers                                = java.util.logging.ConsoleHandler
//	.level                                  = INFO
//	java.util.logging.ConsoleHandler.level  = FINE
//	OpenRemote.controller.level             = SEVERE
//
// Levels apply to already registered providers and are inherited by later
// registrations through dotted-name prefix matching. Unparsable values are
// reported through diagnostics and skipped.
func LoadConfiguration(properties map[string]string) {
	defaultRegistry.loadConfiguration(properties)
}

func (r *registry) register(t Type, h hierarchy.Hierarchy) Provider {
	name := h.CanonicalName()

	r.mu.Lock()
	if p, ok := r.providers[name]; ok {
		r.mu.Unlock()
		return p
	}
	level, hasLevel := r.inheritedLevelLocked(name)
	r.mu.Unlock()

	// Instantiate outside the lock; factories may log.
	p := newInstance(t, h)
	if hasLevel {
		p.SetLevel(level)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Lost the race: keep the first instance, discard ours.
	if existing, ok := r.providers[name]; ok {
		_ = p.Close()
		return existing
	}

	r.providers[name] = p

	return p
}

func (r *registry) registered(h hierarchy.Hierarchy) (Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[h.CanonicalName()]

	return p, ok
}

func (r *registry) addRootHandler(h Handler) {
	if h == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rootHandlers = append(r.rootHandlers, h)
}

// setRootConsole replaces any previous console handler instead of stacking
// a second one, so repeated configuration does not duplicate output.
func (r *registry) setRootConsole(out io.Writer, level record.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rootConsole != nil {
		r.rootConsole.reset(out, level)
		return
	}

	r.rootConsole = newConsoleHandler(out, level)
	r.rootHandlers = append(r.rootHandlers, r.rootConsole)
}

// RootHandlers returns a snapshot of the process-wide root handlers.
// Provider implementations dispatch to these for every record unless the
// provider was opted out with SetUseRootHandlers(false).
func RootHandlers() []Handler {
	r := defaultRegistry

	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := make([]Handler, len(r.rootHandlers))
	copy(handlers, r.rootHandlers)

	return handlers
}

// Configuration property names recognized by LoadConfiguration. The names
// follow the runtime configuration format the original deployments used.
const (
	handlersKey        = "handlers"
	rootLevelKey       = ".level"
	consoleHandlerName = "java.util.logging.ConsoleHandler"
	consoleLevelKey    = consoleHandlerName + ".level"
	levelKeySuffix     = ".level"
)

func (r *registry) loadConfiguration(properties map[string]string) {
	diag := diagnostics.Default()

	// Deterministic application order.
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	consoleLevel := record.Info
	if value, ok := properties[consoleLevelKey]; ok {
		if parsed, err := record.ParseLevel(value); err == nil {
			consoleLevel = parsed
		} else {
			diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
				"Unrecognized console handler level %q in logging configuration.", value), err)
		}
	}

	for _, key := range keys {
		value := properties[key]

		switch {
		case key == handlersKey:
			if strings.Contains(value, consoleHandlerName) {
				r.setRootConsole(os.Stdout, consoleLevel)
			}

		case key == rootLevelKey:
			r.applyConfiguredLevel("", value, diag)

		case key == consoleLevelKey || strings.HasPrefix(key, consoleHandlerName+"."):
			// Handler properties other than the level (formatter and the
			// like) are fixed by this facade.

		case strings.HasSuffix(key, levelKeySuffix):
			name := strings.TrimSuffix(key, levelKeySuffix)
			r.applyConfiguredLevel(name, value, diag)
		}
	}
}

func (r *registry) applyConfiguredLevel(name, value string, diag *diagnostics.Channel) {
	level, err := record.ParseLevel(value)
	if err != nil {
		diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
			"Unrecognized level %q for logger %q in logging configuration.", value, name), err)

		return
	}

	r.mu.Lock()
	r.configuredLevels[name] = level

	targets := make([]Provider, 0, len(r.providers))
	for registered, p := range r.providers {
		if configTargets(name, registered) {
			targets = append(targets, p)
		}
	}
	r.mu.Unlock()

	for _, p := range targets {
		p.SetLevel(level)
	}
}

// configTargets reports whether a configured level for name applies to a
// registered hierarchy: itself and its dotted descendants, with "" as the
// root covering everything.
func configTargets(name, registered string) bool {
	if name == "" {
		return true
	}

	return registered == name || strings.HasPrefix(registered, name+".")
}

// inheritedLevelLocked resolves the configured level for a new registration
// from the longest dotted prefix that has one.
func (r *registry) inheritedLevelLocked(name string) (record.Level, bool) {
	for probe := name; ; {
		if level, ok := r.configuredLevels[probe]; ok {
			return level, true
		}

		dot := strings.LastIndex(probe, ".")
		if dot < 0 {
			break
		}
		probe = probe[:dot]
	}

	level, ok := r.configuredLevels[""]

	return level, ok
}

// consoleHandler renders records through the single-line formatter onto a
// writer. It backs the root console output.
type consoleHandler struct {
	mu        sync.Mutex
	out       io.Writer
	level     record.Level
	formatter *format.SingleLineFormatter
}

func newConsoleHandler(out io.Writer, level record.Level) *consoleHandler {
	return &consoleHandler{out: out, level: level, formatter: format.NewSingleLineFormatter()}
}

func (c *consoleHandler) reset(out io.Writer, level record.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = out
	c.level = level
}

// Publish implements Handler.
func (c *consoleHandler) Publish(r record.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !r.Level.Enabled(c.level) {
		return
	}

	if _, err := io.WriteString(c.out, c.formatter.Format(r)); err != nil {
		diagnostics.Default().Report(diagnostics.WriteFailure,
			"Cannot write log record to console output.", err)
	}
}
