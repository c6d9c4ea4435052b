package config

import (
	"errors"
	"fmt"
)

// ConfigurationError reports malformed or missing configuration. It is
// fatal: a run never starts with a config that produced one.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UnknownEnumError reports an enum value with no known mapping. There is no
// default fallback; a wrongly sized or named output is worse than none.
type UnknownEnumError struct {
	Kind  string
	Value string
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("config: unknown %s %q", e.Kind, e.Value)
}

// IsConfigError reports whether err is a configuration problem of either
// kind.
func IsConfigError(err error) bool {
	var ce *ConfigurationError
	var ue *UnknownEnumError
	return errors.As(err, &ce) || errors.As(err, &ue)
}
