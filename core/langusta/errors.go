package langusta

import (
	"errors"
	"fmt"
)

// ErrConfig matches every ConfigError.
var ErrConfig = errors.New("langusta: invalid configuration")

// ConfigError reports an invalid construction parameter or an unsupported language.
type ConfigError struct {
	// Field names the offending configuration field.
	Field string
	// Reason describes the violation.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
