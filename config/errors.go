package config

import "errors"

// Sentinel errors returned by registry and backend container operations.
// Call sites wrap these with the offending setting, backend, or category
// name, so callers can match with errors.Is.
var (
	// ErrUnknownSetting indicates a setting name that is not part of the registry.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidValue indicates a value outside the setting's declared kind.
	ErrInvalidValue = errors.New("invalid value for setting")

	// ErrUnsupportedBackend indicates a backend name outside the admissible set.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrUninitializedBackend indicates a backend name the container was never
	// prepared to synchronize with.
	ErrUninitializedBackend = errors.New("backend has not been configured")

	// ErrUnsupportedCategory indicates a backend category the container does
	// not recognize.
	ErrUnsupportedCategory = errors.New("unsupported backend category")
)
