package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is wrapped by every ConfigurationError
var ErrInvalidConfiguration = errors.New("invalid configuration")

// A simulation parameter that is missing, non-numeric or out of range.
// Detected before any sampling takes place.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s=%v %s", ErrInvalidConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
