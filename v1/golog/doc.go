// Package golog provides an alternative log provider that redirects records
// into the kataras/golog runtime.
//
// Applications already built around golog can route every record of this
// facade into their existing golog pipeline instead of the built-in zap
// sinks. The redirector is registered as a provider plugin when this
// package is imported:
//
//	import (
//		_ "github.com/openremote/logging/v1/golog"
//
//		"github.com/openremote/logging/v1/logservice"
//		"github.com/openremote/logging/v1/provider"
//	)
//
//	logservice.SetDefaultProvider(golog.Redirector)
//
// Records keep their facade level semantics: SEVERE maps to golog's error
// level, WARNING to warn, INFO to info, and both FINE and FINER to debug.
// The redirector supports TEXT_FILE and STANDARD_OUTPUT consumers; file
// output is plain, without rotation, since rotation is typically owned by
// the surrounding golog deployment.
package golog
