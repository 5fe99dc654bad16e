package provider

import "errors"

var (
	// ErrUnsupportedConsumer is returned when a provider is asked to
	// attach a consumer type it does not implement. This signals a
	// programmer error and is not degraded.
	ErrUnsupportedConsumer = errors.New("provider: unsupported log consumer type")

	// ErrNilHierarchy is returned by factories given a nil hierarchy.
	ErrNilHierarchy = errors.New("provider: hierarchy must not be nil")
)

// IsUnsupportedConsumerError checks whether err signals an unsupported
// consumer type.
func IsUnsupportedConsumerError(err error) bool {
	return errors.Is(err, ErrUnsupportedConsumer)
}
