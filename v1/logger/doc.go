// Package logger provides the leveled convenience facade over the log
// service.
//
// Where the logservice package exposes the full record model, this package
// offers the five conventional severity methods with an argument shape
// that covers the common cases in one call:
//
//	log := logger.New(hierarchy.Name("controller.protocol"))
//
//	log.Info("Device {0} connected", deviceID)
//	log.Error("Cannot reach device {0}", err, deviceID)
//
// When the first variadic argument is an error it becomes the record's
// cause; every remaining argument fills the positional {0}, {1}, ...
// placeholders. Severities map onto the facade levels as Error=SEVERE,
// Warn=WARNING, Info=INFO, Debug=FINE and Trace=FINER.
//
// The *WithContext variants additionally extract the active trace span
// from a context and append trace_id and span_id correlation fields to
// the record:
//
//	log.InfoWithContext(ctx, "Handling command {0}", commandID)
//
// All methods tolerate a nil receiver and nil arguments; a nil logger
// simply drops records.
//
// # Fx integration
//
// The package ships an Fx module that builds a logger from a Config and
// flushes it on application shutdown:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Category: "controller"}
//		}),
//	)
package logger
