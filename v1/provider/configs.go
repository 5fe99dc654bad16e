package provider

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/record"
)

// Property names used by the concrete consumer configurations. The names
// are stable: they may arrive from external configuration sources.
const (
	// FileIdentifierProperty is the file sink target location, either a
	// plain path or a file:// URI.
	FileIdentifierProperty = "FILE_IDENTIFIER"

	// FileBackupCountProperty is the number of rotated files to cycle
	// through.
	FileBackupCountProperty = "FILE_BACKUP_COUNT"

	// FileSizeLimitProperty is the approximate rotation threshold in
	// bytes.
	FileSizeLimitProperty = "FILE_SIZE_LIMIT"

	// FileAppendProperty controls whether an existing log file is
	// appended to or truncated on open.
	FileAppendProperty = "FILE_APPEND"

	// ConsoleLevelProperty is the console sink threshold level name.
	ConsoleLevelProperty = "LEVEL"

	// KafkaBrokersProperty is a comma-separated broker address list.
	KafkaBrokersProperty = "KAFKA_BROKERS"

	// KafkaTopicProperty is the destination topic for shipped records.
	KafkaTopicProperty = "KAFKA_TOPIC"
)

// Defaults applied when a property is missing or unparsable.
const (
	DefaultFileBackupCount = 1
	DefaultFileSizeLimit   = 10000000
	DefaultFileAppend      = false
	DefaultKafkaTopic      = "openremote-logging"

	// TempLogFileName is the file name used in the system temporary
	// directory when the configured file location is unusable.
	TempLogFileName = "openremote.log"
)

// propertyBag is the shared mutable map behind the concrete configurations.
type propertyBag struct {
	mu         sync.Mutex
	properties map[string]string
}

func newPropertyBag() propertyBag {
	return propertyBag{properties: make(map[string]string)}
}

// SetProperty implements ConsumerConfiguration.
func (b *propertyBag) SetProperty(name, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.properties[name] = value
}

// Property implements ConsumerConfiguration. Missing names yield "".
func (b *propertyBag) Property(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.properties[name]
}

// FileConfiguration carries the parameters of a TEXT_FILE consumer.
// Accessors apply documented defaults and report misconfiguration through
// the diagnostics channel instead of failing.
type FileConfiguration struct {
	propertyBag

	diag *diagnostics.Channel
}

// NewFileConfiguration creates a file consumer configuration for the given
// location, leaving rotation parameters at their defaults.
func NewFileConfiguration(location string) *FileConfiguration {
	f := &FileConfiguration{propertyBag: newPropertyBag(), diag: diagnostics.Default()}
	f.SetProperty(FileIdentifierProperty, location)

	return f
}

// NewFileConfigurationWith creates a fully parameterized file consumer
// configuration.
func NewFileConfigurationWith(location string, backupCount, sizeLimit int, append bool) *FileConfiguration {
	f := NewFileConfiguration(location)
	f.SetProperty(FileBackupCountProperty, strconv.Itoa(backupCount))
	f.SetProperty(FileSizeLimitProperty, strconv.Itoa(sizeLimit))
	f.SetProperty(FileAppendProperty, strconv.FormatBool(append))

	return f
}

// emptyFileConfiguration stands in when AddLogConsumer receives no usable
// configuration; every accessor then falls back.
func emptyFileConfiguration() *FileConfiguration {
	return &FileConfiguration{propertyBag: newPropertyBag(), diag: diagnostics.Default()}
}

// FileIdentifier resolves the configured location to a filesystem path.
// file:// URIs are accepted alongside plain paths. An empty or unusable
// value falls back to TempLogFileName in the system temporary directory,
// with a diagnostics report.
func (f *FileConfiguration) FileIdentifier() string {
	value := f.Property(FileIdentifierProperty)

	if path, ok := resolveFileLocation(value); ok {
		return path
	}

	fallback := filepath.Join(os.TempDir(), TempLogFileName)

	f.diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
		"ERROR IN FILE LOG CONFIGURATION -- file identifier %q cannot be resolved to a "+
			"file location. Attempting to log to %q...", value, fallback), nil)

	return fallback
}

func resolveFileLocation(value string) (string, bool) {
	if value == "" {
		return "", false
	}

	if strings.HasPrefix(value, "file://") {
		u, err := url.Parse(value)
		if err != nil || u.Path == "" {
			return "", false
		}
		return u.Path, true
	}

	return value, true
}

// FileBackupCount returns the configured backup count, defaulting to
// DefaultFileBackupCount on a missing or unparsable value.
func (f *FileConfiguration) FileBackupCount() int {
	value := f.Property(FileBackupCountProperty)
	if value == "" {
		return DefaultFileBackupCount
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		f.diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
			"ERROR IN FILE LOG CONFIGURATION -- backup count value %q cannot be parsed to "+
				"a valid integer. Defaulting to value '%d'.", value, DefaultFileBackupCount), err)

		return DefaultFileBackupCount
	}

	return count
}

// FileSizeLimit returns the configured rotation size limit in bytes,
// defaulting to DefaultFileSizeLimit on a missing or unparsable value.
func (f *FileConfiguration) FileSizeLimit() int {
	value := f.Property(FileSizeLimitProperty)
	if value == "" {
		return DefaultFileSizeLimit
	}

	limit, err := strconv.Atoi(value)
	if err != nil {
		f.diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
			"ERROR IN FILE LOG CONFIGURATION -- file size limit value %q cannot be parsed "+
				"to a valid integer. Defaulting to %d bytes.", value, DefaultFileSizeLimit), err)

		return DefaultFileSizeLimit
	}

	return limit
}

// FileAppend returns the configured append flag. Unrecognized values
// default to false with a diagnostics report.
func (f *FileConfiguration) FileAppend() bool {
	value := f.Property(FileAppendProperty)

	switch {
	case value == "" || strings.EqualFold(value, "false"):
		return DefaultFileAppend
	case strings.EqualFold(value, "true"):
		return true
	default:
		f.diag.Report(diagnostics.OpenFailure, fmt.Sprintf(
			"Unrecognized value for log file append setting: %q. Defaulting to false.", value), nil)

		return DefaultFileAppend
	}
}

// ConsoleConfiguration carries the threshold of a STANDARD_OUTPUT consumer.
type ConsoleConfiguration struct {
	propertyBag

	diag *diagnostics.Channel
}

// NewConsoleConfiguration creates a console consumer configuration with the
// given threshold level.
func NewConsoleConfiguration(level record.Level) *ConsoleConfiguration {
	c := &ConsoleConfiguration{propertyBag: newPropertyBag(), diag: diagnostics.Default()}
	c.SetProperty(ConsoleLevelProperty, level.String())

	return c
}

// Level returns the configured threshold, defaulting to INFO on a missing
// or unparsable value.
func (c *ConsoleConfiguration) Level() record.Level {
	value := c.Property(ConsoleLevelProperty)
	if value == "" {
		return record.Info
	}

	level, err := record.ParseLevel(value)
	if err != nil {
		c.diag.Report(diagnostics.FormatFailure, fmt.Sprintf(
			"Unrecognized console log level %q. Defaulting to INFO.", value), err)

		return record.Info
	}

	return level
}

// KafkaConfiguration carries the parameters of a KAFKA consumer.
type KafkaConfiguration struct {
	propertyBag

	diag *diagnostics.Channel
}

// NewKafkaConfiguration creates a kafka consumer configuration for the
// given brokers and topic.
func NewKafkaConfiguration(brokers []string, topic string) *KafkaConfiguration {
	k := &KafkaConfiguration{propertyBag: newPropertyBag(), diag: diagnostics.Default()}
	k.SetProperty(KafkaBrokersProperty, strings.Join(brokers, ","))
	k.SetProperty(KafkaTopicProperty, topic)

	return k
}

// Brokers returns the configured broker addresses.
func (k *KafkaConfiguration) Brokers() []string {
	value := k.Property(KafkaBrokersProperty)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	brokers := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}

	return brokers
}

// Topic returns the configured topic, defaulting to DefaultKafkaTopic.
func (k *KafkaConfiguration) Topic() string {
	if topic := k.Property(KafkaTopicProperty); topic != "" {
		return topic
	}

	return DefaultKafkaTopic
}
