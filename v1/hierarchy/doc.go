// Package hierarchy defines the dotted-name identity of a logger.
//
// Loggers are organized into a tree addressed by canonical dotted names of
// the form Root[.Application].Category. The canonical name is the registry
// key under which a log provider instance is shared process-wide, and it is
// also the name external tooling (log viewers, filters) matches against, so
// its composition rules are a fixed contract.
//
// # Usage
//
// Application code typically declares its log categories as a fixed set of
// Name values:
//
//	const (
//		Controller = hierarchy.Name("controller")
//		Protocol   = hierarchy.Name("controller.protocol")
//	)
//
// A Composite joins a root hierarchy, an optional application segment and a
// category into the full canonical name. Empty segments are omitted:
//
//	h := hierarchy.NewComposite(hierarchy.Name("OpenRemote"), "beehive", Protocol)
//	h.CanonicalName() // "OpenRemote.beehive.controller.protocol"
//
// Composition is independent of provider registration and never fails.
package hierarchy
