package golog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/provider"
	"github.com/openremote/logging/v1/record"
)

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

func newTestRedirector(t *testing.T, name string) *redirector {
	t.Helper()

	p, err := newRedirector(hierarchy.Name(name))
	require.NoError(t, err)

	p.SetUseRootHandlers(false)

	return p
}

func TestRedirectorRegisteredAsPlugin(t *testing.T) {
	p := provider.Register(Redirector, hierarchy.Name("GologPluginLookup"))

	_, ok := p.(*redirector)
	assert.True(t, ok, "expected the golog redirector, got %T", p)
}

func TestRedirectorNilHierarchy(t *testing.T) {
	_, err := newRedirector(nil)

	assert.ErrorIs(t, err, provider.ErrNilHierarchy)
}

func TestRedirectorDeliversToHandlers(t *testing.T) {
	p := newTestRedirector(t, "GologHandlers")

	captured := &captureHandler{}
	p.AddHandler(captured)

	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "redirected"})

	require.Len(t, captured.records(), 1)
	assert.Equal(t, "redirected", captured.records()[0].Message)
}

func TestRedirectorThresholdGatesRecords(t *testing.T) {
	p := newTestRedirector(t, "GologThreshold")

	captured := &captureHandler{}
	p.AddHandler(captured)

	p.SetLevel(record.Warning)
	p.Log(record.Record{Level: record.Info, Message: "filtered"})
	p.Log(record.Record{Level: record.Severe, Message: "passed"})

	require.Len(t, captured.records(), 1)
	assert.Equal(t, "passed", captured.records()[0].Message)
}

func TestRedirectorFileConsumerWritesRecord(t *testing.T) {
	p := newTestRedirector(t, "GologFile")

	path := filepath.Join(t.TempDir(), "redirector.log")
	require.NoError(t, p.AddLogConsumer(provider.TextFile, provider.NewFileConfiguration(path)))

	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "Write {0}", Params: []interface{}{"something"}})
	require.NoError(t, p.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "Write something")
}

func TestRedirectorAppendsCauseSummary(t *testing.T) {
	p := newTestRedirector(t, "GologCause")

	path := filepath.Join(t.TempDir(), "redirector.log")
	require.NoError(t, p.AddLogConsumer(provider.TextFile, provider.NewFileConfiguration(path)))

	p.Log(record.Record{
		Time:    time.Now(),
		Level:   record.Severe,
		Message: "operation failed",
		Cause:   os.ErrPermission,
	})
	require.NoError(t, p.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "operation failed [caused by: permission denied]")
}

func TestRedirectorRejectsKafkaConsumer(t *testing.T) {
	p := newTestRedirector(t, "GologKafka")

	err := p.AddLogConsumer(provider.Kafka, nil)

	assert.True(t, provider.IsUnsupportedConsumerError(err))
}

func TestRedirectorLoadConfigurationLevel(t *testing.T) {
	p := newTestRedirector(t, "GologConfig")

	p.LoadConfiguration(map[string]string{"level": "SEVERE"})

	assert.Equal(t, record.Severe, p.Level())
}

func TestGologLevelMapping(t *testing.T) {
	tests := []struct {
		level record.Level
		want  string
	}{
		{record.Off, "disable"},
		{record.Severe, "error"},
		{record.Warning, "warn"},
		{record.Info, "info"},
		{record.Fine, "debug"},
		{record.Finer, "debug"},
		{record.All, "debug"},
	}

	for _, tt := range tests {
		if got := gologLevel(tt.level); got != tt.want {
			t.Errorf("gologLevel(%s) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
