package logger

import "github.com/openremote/logging/v1/record"

// Default configuration values applied by NewLoggerClient.
const (
	// DefaultCategory is the log category used when Config.Category is
	// empty.
	DefaultCategory = "application"
)

// Config holds the settings for building a logger through the Fx module.
type Config struct {
	// Category is the dotted log category below the root hierarchy, for
	// example "controller.protocol". Defaults to DefaultCategory.
	Category string

	// Application is the optional application segment between the root
	// and the category. Empty means no application segment.
	Application string

	// Level is the logger threshold. The zero value is INFO.
	Level record.Level

	// FileLocation, when non-empty, attaches a rotating file consumer at
	// the given path with default rotation parameters.
	FileLocation string

	// Console attaches a standard output consumer at the logger's level.
	Console bool
}
