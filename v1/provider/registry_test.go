package provider

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/record"
)

func TestRegisterReturnsSameInstanceForSameName(t *testing.T) {
	h := hierarchy.Name("RegistrySameName")

	first := Register(Internal, h)
	second := Register(Internal, h)

	assert.Same(t, first, second)
}

func TestRegisterIgnoresDifferentTypeForExistingName(t *testing.T) {
	h := hierarchy.Name("RegistryTypeChange")

	typ := NewType("test.provider.RegistryAlternative")
	RegisterFactory(typ, func(h hierarchy.Hierarchy) (Provider, error) {
		return &stubProvider{hier: h}, nil
	})

	first := Register(Internal, h)
	second := Register(typ, h)

	assert.Same(t, first, second)
}

func TestRegisteredBeforeAndAfter(t *testing.T) {
	h := hierarchy.Name("RegistryLookup")

	_, ok := Registered(h)
	require.False(t, ok)

	p := Register(Internal, h)

	found, ok := Registered(h)
	require.True(t, ok)
	assert.Same(t, p, found)
}

func TestRegisterDefaultUsesDefaultType(t *testing.T) {
	defer SetDefaultType(Internal)

	typ := NewType("test.provider.RegistryDefault")
	RegisterFactory(typ, func(h hierarchy.Hierarchy) (Provider, error) {
		return &stubProvider{hier: h}, nil
	})
	SetDefaultType(typ)

	p := RegisterDefault(hierarchy.Name("RegistryDefaultType"))

	_, ok := p.(*stubProvider)
	assert.True(t, ok, "expected the default type's provider, got %T", p)
}

func TestLoadConfigurationAppliesLevelToRegisteredProvider(t *testing.T) {
	p := Register(Internal, hierarchy.Name("RegistryConfigured.child"))

	LoadConfiguration(map[string]string{"RegistryConfigured.level": "SEVERE"})

	assert.Equal(t, record.Severe, p.Level())
}

func TestLoadConfigurationLevelInheritedByLaterRegistration(t *testing.T) {
	LoadConfiguration(map[string]string{"RegistryInherited.level": "FINE"})

	p := Register(Internal, hierarchy.Name("RegistryInherited.sub.logger"))

	assert.Equal(t, record.Fine, p.Level())
}

func TestLoadConfigurationRootLevel(t *testing.T) {
	p := Register(Internal, hierarchy.Name("RegistryRootLevel"))

	LoadConfiguration(map[string]string{".level": "WARNING"})
	defer LoadConfiguration(map[string]string{".level": "INFO"})

	assert.Equal(t, record.Warning, p.Level())
}

func TestLoadConfigurationBadLevelIgnored(t *testing.T) {
	p := Register(Internal, hierarchy.Name("RegistryBadLevel"))
	p.SetLevel(record.Info)

	LoadConfiguration(map[string]string{"RegistryBadLevel.level": "LOUD"})

	assert.Equal(t, record.Info, p.Level())
}

func TestConfigTargets(t *testing.T) {
	assert.True(t, configTargets("", "Anything.at.all"))
	assert.True(t, configTargets("OpenRemote", "OpenRemote"))
	assert.True(t, configTargets("OpenRemote", "OpenRemote.controller"))
	assert.False(t, configTargets("OpenRemote", "OpenRemoteOther"))
	assert.False(t, configTargets("OpenRemote.controller", "OpenRemote"))
}

func TestRootConsoleReceivesRecordsFromProviders(t *testing.T) {
	var buf bytes.Buffer

	defaultRegistry.setRootConsole(&buf, record.Info)

	p := Register(Internal, hierarchy.Name("RegistryRootConsole"))
	p.Log(record.Record{
		Time:    time.Date(2014, 7, 1, 15, 4, 5, 123*int(time.Millisecond), time.UTC),
		Level:   record.Info,
		Message: "to the console",
	})

	assert.Contains(t, buf.String(), "[2014/07/01 15:04:05.123 UTC] INFO: to the console")
}

func TestRootConsoleReplacedNotStacked(t *testing.T) {
	var buf bytes.Buffer

	defaultRegistry.setRootConsole(&buf, record.Info)
	defaultRegistry.setRootConsole(&buf, record.Warning)

	p := Register(Internal, hierarchy.Name("RegistryConsoleReplaced"))
	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "below threshold"})

	assert.NotContains(t, buf.String(), "below threshold")
}

func TestProviderOptsOutOfRootHandlers(t *testing.T) {
	var buf bytes.Buffer

	defaultRegistry.setRootConsole(&buf, record.Info)

	p := Register(Internal, hierarchy.Name("RegistryOptOut"))
	p.SetUseRootHandlers(false)
	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "kept local"})

	assert.NotContains(t, buf.String(), "kept local")
}

func TestAddRootHandler(t *testing.T) {
	captured := &captureHandler{}
	AddRootHandler(captured)

	p := Register(Internal, hierarchy.Name("RegistryRootHandler"))
	p.Log(record.Record{Time: time.Now(), Level: record.Info, Message: "fanned out"})

	found := false
	for _, r := range captured.records() {
		if r.Message == "fanned out" {
			found = true
		}
	}

	assert.True(t, found)
}
