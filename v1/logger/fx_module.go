package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/openremote/logging/v1/hierarchy"
	"github.com/openremote/logging/v1/logservice"
)

// FXModule integrates the logger into an Fx application: it provides the
// NewLoggerClient factory and registers a shutdown hook that flushes the
// logger's consumers.
//
// A logger.Config instance must be available in the dependency injection
// container:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Category: "controller"}
//		}),
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// NewLoggerClient builds a leveled logger from the configuration. The
// service is created deferred so the application segment applies before
// the canonical name is fixed.
func NewLoggerClient(cfg Config) (*Logger, error) {
	category := cfg.Category
	if category == "" {
		category = DefaultCategory
	}

	s := logservice.NewDeferred(hierarchy.Name(category))
	if cfg.Application != "" {
		s.SetApplicationHierarchy(cfg.Application)
	}
	s.Register()
	s.SetLevel(cfg.Level)

	var err error
	if cfg.FileLocation != "" {
		err = multierr.Append(err, s.AddFileLog(cfg.FileLocation))
	}
	if cfg.Console {
		err = multierr.Append(err, s.AddConsoleOutputAt(cfg.Level))
	}
	if err != nil {
		return nil, err
	}

	return Wrap(s), nil
}

// RegisterLoggerLifecycle flushes and releases the logger's consumers when
// the Fx application stops. It is invoked by FXModule and does not need to
// be called directly.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
