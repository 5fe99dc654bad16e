package provider

import (
	"fmt"
	"sync"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/hierarchy"
)

// Type identifies a provider implementation in the factory registry. The
// identifier is the import path and type name of the implementation, so
// external configuration can request a backend by a stable string.
type Type struct {
	id string
}

// NewType creates a provider type identifier. The id should be the fully
// qualified implementation name.
func NewType(id string) Type { return Type{id: id} }

// ID returns the stable identifier string.
func (t Type) ID() string { return t.id }

func (t Type) String() string { return t.id }

// Internal identifies the built-in zap-backed provider. It is always
// registered and is the fallback when any other type cannot be loaded.
var Internal = NewType("github.com/openremote/logging/v1/provider.Internal")

// Factory constructs a provider instance for a hierarchy. Factories must
// not return a nil provider with a nil error.
type Factory func(h hierarchy.Hierarchy) (Provider, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[string]Factory{}

	defaultTypeMu sync.RWMutex
	defaultType   = Internal
)

func init() {
	RegisterFactory(Internal, func(h hierarchy.Hierarchy) (Provider, error) {
		return newInternalProvider(h)
	})
}

// RegisterFactory makes a provider implementation available under the given
// type identifier. Later registrations for the same identifier replace
// earlier ones. Typically called from an implementation package's init.
func RegisterFactory(t Type, f Factory) {
	if f == nil {
		return
	}

	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[t.ID()] = f
}

// SetDefaultType selects the provider type used when registration does not
// name one explicitly. An unknown type is still accepted here; it degrades
// to the built-in provider at instantiation time.
func SetDefaultType(t Type) {
	defaultTypeMu.Lock()
	defer defaultTypeMu.Unlock()

	defaultType = t
}

// DefaultType returns the provider type used for plain registrations.
func DefaultType() Type {
	defaultTypeMu.RLock()
	defer defaultTypeMu.RUnlock()

	return defaultType
}

// newInstance instantiates a provider of the requested type for the given
// hierarchy. A missing factory, a factory error, a factory panic or a nil
// result all degrade to the built-in provider with a diagnostics report;
// the caller always receives a working provider.
func newInstance(t Type, h hierarchy.Hierarchy) Provider {
	factoriesMu.RLock()
	factory, known := factories[t.ID()]
	factoriesMu.RUnlock()

	if known {
		if p := tryFactory(t, factory, h); p != nil {
			return p
		}
	} else if t.ID() != Internal.ID() {
		diagnostics.Default().Report(diagnostics.OpenFailure, fmt.Sprintf(
			"Unknown log provider type %q. Reverting to default logging.", t.ID()), nil)
	}

	p, err := newInternalProvider(h)
	if err != nil {
		// The built-in factory only fails on a nil hierarchy, which the
		// registry never passes.
		panic(err)
	}

	return p
}

// tryFactory runs a provider factory with panic containment. It returns nil
// when the factory cannot produce a usable provider.
func tryFactory(t Type, factory Factory, h hierarchy.Hierarchy) (p Provider) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			diagnostics.Default().Report(diagnostics.OpenFailure, fmt.Sprintf(
				"Log provider %q panicked during construction: %v. Reverting to default logging.",
				t.ID(), r), nil)
		}
	}()

	p, err := factory(h)
	if err != nil {
		diagnostics.Default().Report(diagnostics.OpenFailure, fmt.Sprintf(
			"Cannot construct log provider %q. Reverting to default logging.", t.ID()), err)

		return nil
	}

	if p == nil {
		diagnostics.Default().Report(diagnostics.OpenFailure, fmt.Sprintf(
			"Log provider factory %q returned no provider. Reverting to default logging.",
			t.ID()), nil)
	}

	return p
}
