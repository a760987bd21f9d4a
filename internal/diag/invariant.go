package diag

import (
	"errors"
	"fmt"
)

// InvariantError is a fatal compiler-internal error: the analysis received
// input it should never see given correct upstream passes, or one of its own
// exhaustive dispatches fell through. It must not be downgraded to a warning.
type InvariantError struct {
	Code Code
	Msg  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated [%s]: %s", e.Code, e.Msg)
}

// Invariantf constructs an InvariantError with a formatted message.
func Invariantf(code Code, format string, args ...any) error {
	return &InvariantError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err is (or wraps) an InvariantError.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
