package provider

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/record"
)

// internalProvider is the built-in zap-backed provider. Consumers are
// zapcore cores behind a shared tee; the provider threshold is an atomic
// level so SetLevel is safe during concurrent logging.
type internalProvider struct {
	hier hierarchy.Hierarchy
	atom zap.AtomicLevel
	diag *diagnostics.Channel

	mu       sync.Mutex
	level    record.Level
	cores    []zapcore.Core
	logger   *zap.Logger
	handlers []Handler
	closers  []func() error
	useRoot  bool
}

func newInternalProvider(h hierarchy.Hierarchy) (*internalProvider, error) {
	if h == nil {
		return nil, ErrNilHierarchy
	}

	p := &internalProvider{
		hier:    h,
		atom:    zap.NewAtomicLevelAt(record.Info.ZapLevel()),
		diag:    diagnostics.Default(),
		level:   record.Info,
		logger:  zap.NewNop(),
		useRoot: true,
	}

	return p, nil
}

// Hierarchy implements Provider.
func (p *internalProvider) Hierarchy() hierarchy.Hierarchy { return p.hier }

// SetLevel implements Provider. The zap atomic is the gate the logging
// path checks; the facade level is kept alongside for Level.
func (p *internalProvider) SetLevel(l record.Level) {
	p.mu.Lock()
	p.level = l
	p.mu.Unlock()

	p.atom.SetLevel(l.ZapLevel())
}

// Level implements Provider.
func (p *internalProvider) Level() record.Level {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.level
}

// SetUseRootHandlers implements Provider.
func (p *internalProvider) SetUseRootHandlers(use bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.useRoot = use
}

// AddHandler implements Provider.
func (p *internalProvider) AddHandler(h Handler) {
	if h == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, h)
}

// Log implements Provider. The record is delivered to the attached
// handlers, to the process root handlers unless opted out, and to the
// consumer cores through the zap tee.
func (p *internalProvider) Log(r record.Record) {
	if !p.atom.Enabled(r.Level.ZapLevel()) {
		return
	}

	p.mu.Lock()
	handlers := make([]Handler, len(p.handlers))
	copy(handlers, p.handlers)
	useRoot := p.useRoot
	logger := p.logger
	p.mu.Unlock()

	for _, h := range handlers {
		h.Publish(r)
	}

	if useRoot {
		for _, h := range RootHandlers() {
			h.Publish(r)
		}
	}

	ent := zapcore.Entry{
		Time:       r.Time,
		Level:      r.Level.ZapLevel(),
		Message:    r.Message,
		LoggerName: p.hier.CanonicalName(),
	}

	if ce := logger.Core().Check(ent, nil); ce != nil {
		ce.Write(zap.Any(recordFieldKey, r))
	}
}

// AddLogConsumer implements Provider.
func (p *internalProvider) AddLogConsumer(consumerType ConsumerType, config ConsumerConfiguration) error {
	switch consumerType {
	case TextFile:
		p.addCore(p.newFileCore(fileConfigurationFrom(config)))
		return nil

	case StandardOutput:
		p.addCore(newConsoleCore(consoleConfigurationFrom(config).Level()))
		return nil

	case Kafka:
		core, closer, err := newKafkaCore(p.hier.CanonicalName(), kafkaConfigurationFrom(config))
		if err != nil {
			return err
		}
		p.addCore(core)
		p.addCloser(closer)

		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedConsumer, consumerType)
	}
}

// newFileCore opens a rotating file sink. Illegal rotation values and an
// unwritable target both degrade to a console sink so the records are not
// lost silently.
func (p *internalProvider) newFileCore(config *FileConfiguration) zapcore.Core {
	backupCount := config.FileBackupCount()
	sizeLimit := config.FileSizeLimit()

	if backupCount < 1 || sizeLimit < 1 {
		p.diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
			"ERROR IN FILE LOG CONFIGURATION -- illegal backup count %d or size limit %d. "+
				"Reverting to console output.", backupCount, sizeLimit), nil)

		return newConsoleCore(record.All)
	}

	path := config.FileIdentifier()

	if err := prepareLogFile(path, config.FileAppend()); err != nil {
		p.diag.Report(diagnostics.OpenFailure, fmt.Sprintf(
			"Cannot open log file %q. Reverting to console output.", path), err)

		return newConsoleCore(record.All)
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    bytesToMegabytes(sizeLimit),
		MaxBackups: rotatedFileCount(backupCount),
	}

	p.addCloser(sink.Close)

	return newSinkCore(zapcore.AddSync(sink), levelEnabler(record.All))
}

// prepareLogFile verifies the target is writable and truncates it when
// append mode is off. The rotation sink itself always appends.
func prepareLogFile(path string, append bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if !append {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}

	return f.Close()
}

// bytesToMegabytes converts the byte-denominated size limit property to the
// whole megabytes the rotation sink counts in, at least one.
func bytesToMegabytes(limit int) int {
	mb := limit / (1024 * 1024)
	if mb < 1 {
		mb = 1
	}

	return mb
}

// rotatedFileCount converts the total file count of the configuration into
// the number of rotated backups kept alongside the active file.
func rotatedFileCount(backupCount int) int {
	if backupCount <= 1 {
		return 0
	}

	return backupCount - 1
}

func (p *internalProvider) addCore(core zapcore.Core) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cores = append(p.cores, core)
	p.logger = zap.New(zapcore.NewTee(p.cores...))
}

func (p *internalProvider) addCloser(closer func() error) {
	if closer == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.closers = append(p.closers, closer)
}

// LoadConfiguration implements Provider. The built-in provider recognizes
// the level property; everything else is sink configuration handled by the
// package-level LoadConfiguration.
func (p *internalProvider) LoadConfiguration(properties map[string]string) {
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

// Sync implements Provider.
func (p *internalProvider) Sync() error {
	p.mu.Lock()
	logger := p.logger
	p.mu.Unlock()

	return logger.Sync()
}

// Close implements Provider.
func (p *internalProvider) Close() error {
	err := p.Sync()

	p.mu.Lock()
	closers := p.closers
	p.closers = nil
	p.mu.Unlock()

	for _, c := range closers {
		err = multierr.Append(err, c())
	}

	return err
}

// fileConfigurationFrom adapts an arbitrary consumer configuration to the
// typed file accessors, copying the recognized properties when the caller
// supplied its own implementation.
func fileConfigurationFrom(config ConsumerConfiguration) *FileConfiguration {
	if f, ok := config.(*FileConfiguration); ok {
		return f
	}

	f := emptyFileConfiguration()
	if config == nil {
		return f
	}

	for _, name := range []string{
		FileIdentifierProperty, FileBackupCountProperty, FileSizeLimitProperty, FileAppendProperty,
	} {
		if value := config.Property(name); value != "" {
			f.SetProperty(name, value)
		}
	}

	return f
}

func consoleConfigurationFrom(config ConsumerConfiguration) *ConsoleConfiguration {
	if c, ok := config.(*ConsoleConfiguration); ok {
		return c
	}

	c := &ConsoleConfiguration{propertyBag: newPropertyBag(), diag: diagnostics.Default()}
	if config == nil {
		return c
	}

	if value := config.Property(ConsoleLevelProperty); value != "" {
		c.SetProperty(ConsoleLevelProperty, value)
	}

	return c
}

func kafkaConfigurationFrom(config ConsumerConfiguration) *KafkaConfiguration {
	if k, ok := config.(*KafkaConfiguration); ok {
		return k
	}

	k := &KafkaConfiguration{propertyBag: newPropertyBag(), diag: diagnostics.Default()}
	if config == nil {
		return k
	}

	for _, name := range []string{KafkaBrokersProperty, KafkaTopicProperty} {
		if value := config.Property(name); value != "" {
			k.SetProperty(name, value)
		}
	}

	return k
}
