package logservice

import (
	"sync"
	"time"

	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/provider"
	"github.com/openremote/logging/v1/record"
)

// DefaultRootHierarchy is the root segment every logger name starts with.
const DefaultRootHierarchy = hierarchy.Name("OpenRemote")

var (
	defaultsMu         sync.RWMutex
	defaultApplication string
)

// SetDefaultApplicationHierarchy sets the application segment used by
// services created afterwards. Services already created keep the segment
// they were built with.
func SetDefaultApplicationHierarchy(application string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaultApplication = application
}

// SetDefaultProvider selects the provider type used by services that do
// not name one explicitly with SetProvider.
func SetDefaultProvider(t provider.Type) {
	provider.SetDefaultType(t)
}

// AddRootConsoleOutput installs the process-wide console output at the
// given threshold. Records of every registered logger appear on standard
// output unless the logger opted out of root handlers.
func AddRootConsoleOutput(level record.Level) {
	provider.AddRootConsoleOutput(level)
}

// LoadConfiguration bulk-applies runtime configuration properties to the
// process-wide log tree. See the provider package for the property format.
func LoadConfiguration(properties map[string]string) {
	provider.LoadConfiguration(properties)
}

// LogService addresses one logger in the log tree and delegates every
// operation to its registered provider.
//
// All methods are safe for concurrent use and tolerate a nil receiver:
// logging through a nil service is a no-op, configuration through a nil
// service returns nil. Domain facades can therefore embed a *LogService
// without guarding against partial initialization.
type LogService struct {
	mu       sync.Mutex
	hier     *hierarchy.Composite
	typ      provider.Type
	delegate provider.Provider
}

// New creates and immediately registers a service for the given category.
// The logger name is root + default application + category.
func New(category hierarchy.Hierarchy) *LogService {
	s := NewDeferred(category)
	s.Register()

	return s
}

// NewWithProvider creates and registers a service backed by the given
// provider type. When a provider is already registered under the same
// canonical name, that provider is shared and the requested type is
// ignored.
func NewWithProvider(t provider.Type, category hierarchy.Hierarchy) *LogService {
	s := NewDeferred(category)
	s.SetProvider(t)
	s.Register()

	return s
}

// NewDeferred creates a service without registering it, leaving the
// application segment and provider type changeable. Registration happens
// on the first call to Register or to any operation that needs the
// provider.
func NewDeferred(category hierarchy.Hierarchy) *LogService {
	defaultsMu.RLock()
	application := defaultApplication
	defaultsMu.RUnlock()

	return &LogService{
		hier: hierarchy.NewComposite(DefaultRootHierarchy, application, category),
		typ:  provider.DefaultType(),
	}
}

// Hierarchy returns the composite hierarchy this service addresses.
func (s *LogService) Hierarchy() hierarchy.Hierarchy {
	if s == nil {
		return nil
	}

	return s.hier
}

// SetApplicationHierarchy replaces the application segment. It only has
// effect before registration; once registered the canonical name is fixed
// and the call is ignored.
func (s *LogService) SetApplicationHierarchy(application string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.delegate != nil {
		return
	}

	s.hier.SetApplication(application)
}

// SetProvider selects the provider type used at registration. Like
// SetApplicationHierarchy it is ignored once the service is registered,
// and it never changes the provider of an existing registry entry.
func (s *LogService) SetProvider(t provider.Type) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.delegate != nil {
		return
	}

	s.typ = t
}

// Register resolves the service's provider through the registry. It is
// idempotent; the first call fixes the canonical name and provider.
func (s *LogService) Register() {
	if s == nil {
		return
	}

	s.provider()
}

// Registered reports whether the service has resolved its provider.
func (s *LogService) Registered() bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.delegate != nil
}

// provider returns the delegate, registering on first use.
func (s *LogService) provider() provider.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.delegate == nil {
		s.delegate = provider.Register(s.typ, s.hier)
	}

	return s.delegate
}

// Log delivers one logging event. The message is a template with {0}, {1},
// ... placeholders filled from params; cause may be nil. The call never
// fails: records above the threshold are delivered, everything else is
// dropped or degraded according to the provider's policy.
func (s *LogService) Log(level record.Level, msg string, params []interface{}, cause error) {
	if s == nil {
		return
	}

	r := record.Record{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Params:  params,
		Cause:   cause,
	}

	if cause != nil {
		r.CallSite = record.CaptureStack(1)
	}

	s.provider().Log(r)
}

// LogRecord delivers a pre-built record, for callers that attach
// correlation fields or their own timestamps.
func (s *LogService) LogRecord(r record.Record) {
	if s == nil {
		return
	}

	if r.Time.IsZero() {
		r.Time = time.Now()
	}

	if r.Cause != nil && r.CallSite == nil {
		r.CallSite = record.CaptureStack(1)
	}

	s.provider().Log(r)
}

// AddFileLog attaches a rotating text file consumer at the given location
// with default rotation parameters.
func (s *LogService) AddFileLog(location string) error {
	if s == nil {
		return nil
	}

	return s.provider().AddLogConsumer(provider.TextFile, provider.NewFileConfiguration(location))
}

// AddFileLogWith attaches a rotating text file consumer with explicit
// rotation parameters: total file count, rotation threshold in bytes, and
// whether an existing file is appended to.
func (s *LogService) AddFileLogWith(location string, backupCount, sizeLimit int, append bool) error {
	if s == nil {
		return nil
	}

	config := provider.NewFileConfigurationWith(location, backupCount, sizeLimit, append)

	return s.provider().AddLogConsumer(provider.TextFile, config)
}

// AddConsoleOutput attaches a standard output consumer at INFO.
func (s *LogService) AddConsoleOutput() error {
	return s.AddConsoleOutputAt(record.Info)
}

// AddConsoleOutputAt attaches a standard output consumer with its own
// threshold level.
func (s *LogService) AddConsoleOutputAt(level record.Level) error {
	if s == nil {
		return nil
	}

	return s.provider().AddLogConsumer(provider.StandardOutput, provider.NewConsoleConfiguration(level))
}

// AddKafkaOutput attaches a consumer shipping formatted records to the
// given Kafka topic.
func (s *LogService) AddKafkaOutput(brokers []string, topic string) error {
	if s == nil {
		return nil
	}

	return s.provider().AddLogConsumer(provider.Kafka, provider.NewKafkaConfiguration(brokers, topic))
}

// AddLogConsumer attaches a consumer of the given type with an arbitrary
// configuration.
func (s *LogService) AddLogConsumer(consumerType provider.ConsumerType, config provider.ConsumerConfiguration) error {
	if s == nil {
		return nil
	}

	return s.provider().AddLogConsumer(consumerType, config)
}

// Configure applies key/value settings to this logger's provider.
func (s *LogService) Configure(properties map[string]string) {
	if s == nil {
		return
	}

	s.provider().LoadConfiguration(properties)
}

// AddHandler attaches a programmatic record handler to this logger.
func (s *LogService) AddHandler(h provider.Handler) {
	if s == nil {
		return
	}

	s.provider().AddHandler(h)
}

// SetUseRootHandlers controls delivery to the process-wide root handlers.
func (s *LogService) SetUseRootHandlers(use bool) {
	if s == nil {
		return
	}

	s.provider().SetUseRootHandlers(use)
}

// SetLevel sets the logger threshold.
func (s *LogService) SetLevel(level record.Level) {
	if s == nil {
		return
	}

	s.provider().SetLevel(level)
}

// Level returns the logger threshold.
func (s *LogService) Level() record.Level {
	if s == nil {
		return record.Off
	}

	return s.provider().Level()
}

// Sync flushes buffered consumer output.
func (s *LogService) Sync() error {
	if s == nil {
		return nil
	}

	return s.provider().Sync()
}

// Close flushes and releases consumer resources. The registry entry stays;
// Close is meant for process shutdown.
func (s *LogService) Close() error {
	if s == nil {
		return nil
	}

	return s.provider().Close()
}
