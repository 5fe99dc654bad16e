// Package logservice is the central entry point of the logging facade.
//
// A LogService addresses one logger in the process-wide log tree. Loggers
// are named by a dotted hierarchy composed of three segments: a fixed root,
// an optional application name and the category the caller asked for.
// Registration is append-only and idempotent: the first registration for a
// canonical name creates the backing provider, every later registration
// for the same name returns a service sharing that provider, regardless of
// the provider type requested.
//
// # Typical use
//
// Declare categories as constants and create services for them:
//
//	const Protocol = hierarchy.Name("controller.protocol")
//
//	log := logservice.New(Protocol)
//	log.Log(record.Info, "Device {0} connected", []interface{}{deviceID}, nil)
//
// Domain-specific facades are built by composition: embed *LogService in a
// struct and add the domain methods on top. The leveled convenience facade
// in the logger package is built exactly that way.
//
// # Deferred registration
//
// NewDeferred creates a service without touching the registry, so the
// application segment can still be changed before the canonical name is
// fixed:
//
//	log := logservice.NewDeferred(Protocol)
//	log.SetApplicationHierarchy("manna")
//	log.Register()
//
// The first logging or configuration call registers implicitly if Register
// was not called.
//
// # Failure policy
//
// Logging calls never return errors and never panic; internal failures are
// reported through the diagnostics package and degrade output fidelity at
// worst. Configuration calls that express a programmer error, such as
// requesting a consumer type the provider does not support, do return one.
package logservice
