package payload

import (
	"errors"
	"fmt"
)

// ErrDecode matches every DecodeError via errors.Is.
var ErrDecode = errors.New("payload: decode failed")

// DecodeError reports a malformed document or a missing required field.
type DecodeError struct {
	// Reason describes what is wrong with the document.
	Reason string
	// Err is the underlying parser error, if any.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payload: %s: %v", e.Reason, e.Err)
	}
	return "payload: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) true for any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func decodeErr(err error, format string, args ...any) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf(format, args...), Err: err}
}
