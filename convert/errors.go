package convert

import (
	"errors"
	"fmt"
)

// FormatError is returned when the input is not a valid event stream. Callers
// loading files usually treat it as "not this format" and try the next one.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid event stream: %s: %v", e.Reason, e.Err)
	}
	return "invalid event stream: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// ErrTooLarge is returned when the input exceeds the size the caller allowed.
// It is kept apart from FormatError so the user can be told what to do about
// it.
var ErrTooLarge = errors.New("input too large")

func formatErrorf(format string, args ...any) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// IsFormatError reports whether err is, or wraps, a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
