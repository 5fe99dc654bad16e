package provider

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/record"
)

// captureHandler records every published record for assertions.
type captureHandler struct {
	mu   sync.Mutex
	recs []record.Record
}

func (c *captureHandler) Publish(r record.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append(c.recs, r)
}

func (c *captureHandler) records() []record.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]record.Record, len(c.recs))
	copy(out, c.recs)

	return out
}

func newTestProvider(t *testing.T, name string) *internalProvider {
	t.Helper()

	p, err := newInternalProvider(hierarchy.Name(name))
	require.NoError(t, err)

	p.SetUseRootHandlers(false)

	return p
}

func TestNewInternalProviderNilHierarchy(t *testing.T) {
	_, err := newInternalProvider(nil)

	assert.ErrorIs(t, err, ErrNilHierarchy)
}

func TestProviderDeliversToHandlers(t *testing.T) {
	p := newTestProvider(t, "ProviderHandlers")

	captured := &captureHandler{}
	p.AddHandler(captured)

	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "hello"})

	require.Len(t, captured.records(), 1)
	assert.Equal(t, "hello", captured.records()[0].Message)
}

func TestProviderThresholdGatesRecords(t *testing.T) {
	p := newTestProvider(t, "ProviderThreshold")

	captured := &captureHandler{}
	p.AddHandler(captured)

	p.SetLevel(record.Warning)
	p.Log(record.Record{Level: record.Info, Message: "filtered"})
	p.Log(record.Record{Level: record.Severe, Message: "passed"})

	require.Len(t, captured.records(), 1)
	assert.Equal(t, "passed", captured.records()[0].Message)
}

func TestProviderLevelRoundTrip(t *testing.T) {
	p := newTestProvider(t, "ProviderLevel")

	assert.Equal(t, record.Info, p.Level())

	p.SetLevel(record.Finer)
	assert.Equal(t, record.Finer, p.Level())

	p.SetLevel(record.Off)
	assert.Equal(t, record.Off, p.Level())
}

func TestProviderOffDisablesLogging(t *testing.T) {
	p := newTestProvider(t, "ProviderOff")

	captured := &captureHandler{}
	p.AddHandler(captured)

	p.SetLevel(record.Off)
	p.Log(record.Record{Level: record.Severe, Message: "dropped"})

	assert.Empty(t, captured.records())
}

func TestProviderFileConsumerWritesFormattedRecord(t *testing.T) {
	p := newTestProvider(t, "ProviderFile")

	path := filepath.Join(t.TempDir(), "provider.log")
	require.NoError(t, p.AddLogConsumer(TextFile, NewFileConfiguration(path)))

	p.Log(record.Record{
		Time:    time.Date(2014, 7, 1, 15, 4, 5, 123*int(time.Millisecond), time.UTC),
		Level:   record.Info,
		Message: "Write {0}",
		Params:  []interface{}{"something"},
	})
	require.NoError(t, p.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "[2014/07/01 15:04:05.123 UTC] INFO: Write something")
}

func TestProviderFileConsumerTruncatesWithoutAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provider.log")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	p := newTestProvider(t, "ProviderTruncate")
	require.NoError(t, p.AddLogConsumer(TextFile, NewFileConfiguration(path)))

	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "fresh"})
	require.NoError(t, p.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(content), "stale content")
	assert.Contains(t, string(content), "INFO: fresh")
}

func TestProviderFileConsumerKeepsExistingWithAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provider.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	p := newTestProvider(t, "ProviderAppend")
	require.NoError(t, p.AddLogConsumer(TextFile, NewFileConfigurationWith(path, 1, DefaultFileSizeLimit, true)))

	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "fresh"})
	require.NoError(t, p.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "previous run")
	assert.Contains(t, string(content), "INFO: fresh")
}

// reportRecorder captures diagnostics reports for assertions.
type reportRecorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *reportRecorder) Report(_ diagnostics.Kind, msg string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *reportRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.msgs))
	copy(out, r.msgs)

	return out
}

func TestProviderIllegalRotationValuesDegradeToConsole(t *testing.T) {
	p := newTestProvider(t, "ProviderIllegalRotation")

	reports := &reportRecorder{}
	diagnostics.Default().Attach(reports)

	path := filepath.Join(t.TempDir(), "illegal.log")
	config := NewFileConfigurationWith(path, -5, -100, false)

	require.NoError(t, p.AddLogConsumer(TextFile, config))

	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "degraded"})
	require.NoError(t, p.Close())

	// The file sink was never created; the record went to the console
	// fallback instead.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file sink must not be created for illegal rotation values")

	reported := false
	for _, msg := range reports.messages() {
		if strings.Contains(msg, "illegal backup count -5 or size limit -100") {
			reported = true
		}
	}

	assert.True(t, reported, "expected a diagnostics report for the illegal rotation values")
}

func TestProviderUnopenableFileDegradesWithoutError(t *testing.T) {
	p := newTestProvider(t, "ProviderBadFile")

	config := NewFileConfiguration(filepath.Join(t.TempDir(), "no", "such", "dir", "out.log"))

	assert.NoError(t, p.AddLogConsumer(TextFile, config))
}

func TestProviderUnsupportedConsumerType(t *testing.T) {
	p := newTestProvider(t, "ProviderXML")

	err := p.AddLogConsumer(XMLFile, nil)

	assert.ErrorIs(t, err, ErrUnsupportedConsumer)
	assert.True(t, IsUnsupportedConsumerError(err))
}

func TestProviderKafkaConsumerRequiresBrokers(t *testing.T) {
	p := newTestProvider(t, "ProviderKafkaEmpty")

	err := p.AddLogConsumer(Kafka, NewKafkaConfiguration(nil, "logs"))

	assert.Error(t, err)
}

func TestProviderLoadConfigurationLevel(t *testing.T) {
	p := newTestProvider(t, "ProviderConfig")

	p.LoadConfiguration(map[string]string{"level": "FINE"})

	assert.Equal(t, record.Fine, p.Level())
}

func TestProviderLoadConfigurationBadLevelIgnored(t *testing.T) {
	p := newTestProvider(t, "ProviderConfigBad")

	p.LoadConfiguration(map[string]string{"level": "LOUD"})

	assert.Equal(t, record.Info, p.Level())
}

func TestConsumerTypeNames(t *testing.T) {
	assert.Equal(t, "TEXT_FILE", TextFile.String())
	assert.Equal(t, "XML_FILE", XMLFile.String())
	assert.Equal(t, "STANDARD_OUTPUT", StandardOutput.String())
	assert.Equal(t, "KAFKA", Kafka.String())
}

func TestBytesToMegabytes(t *testing.T) {
	// The rotation sink counts in binary megabytes, so the 10,000,000 byte
	// default rounds down to 9.
	assert.Equal(t, 1, bytesToMegabytes(1))
	assert.Equal(t, 1, bytesToMegabytes(1024*1024))
	assert.Equal(t, 9, bytesToMegabytes(DefaultFileSizeLimit))
	assert.Equal(t, 10, bytesToMegabytes(10*1024*1024))
}

func TestLevelEnablerThreshold(t *testing.T) {
	enab := levelEnabler(record.Warning)

	assert.True(t, enab.Enabled(record.Severe.ZapLevel()))
	assert.True(t, enab.Enabled(record.Warning.ZapLevel()))
	assert.False(t, enab.Enabled(record.Info.ZapLevel()))
	assert.False(t, enab.Enabled(record.Finer.ZapLevel()))
}

func TestRotatedFileCount(t *testing.T) {
	assert.Equal(t, 0, rotatedFileCount(0))
	assert.Equal(t, 0, rotatedFileCount(1))
	assert.Equal(t, 3, rotatedFileCount(4))
}
