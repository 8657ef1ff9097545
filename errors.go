package hmd

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the runtime service is not running, no headset is
	// attached or the runtime library cannot be found. Callers are expected
	// to fall back to a non-VR path.
	ErrUnavailable = errors.New("hmd: runtime or headset not available")

	// ErrBackend marks a recoverable runtime failure, such as a refused
	// session. Callers may retry later.
	ErrBackend = errors.New("hmd: runtime failure")

	// ErrUnrecoverable marks a broken render pipeline invariant.
	// Every *UnrecoverableError matches it with errors.Is.
	ErrUnrecoverable = errors.New("hmd: unrecoverable runtime fault")
)

// UnrecoverableError reports a fault after which the session or render
// target must not be used again: a swap chain that could not be created,
// an empty chain, a rejected commit or misuse of the session reference count.
type UnrecoverableError struct {
	// Op is the operation that failed (e.g., "swapchain.Resize").
	Op string

	// Detail describes what went wrong.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

func (e *UnrecoverableError) Error() string {
	msg := "hmd: " + e.Op + ": " + e.Detail
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *UnrecoverableError) Unwrap() error { return e.Err }

// Is makes every UnrecoverableError match ErrUnrecoverable.
func (e *UnrecoverableError) Is(target error) bool {
	return target == ErrUnrecoverable
}

// Unrecoverable builds an *UnrecoverableError. detail may use fmt verbs.
func Unrecoverable(op string, cause error, detail string, args ...any) *UnrecoverableError {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &UnrecoverableError{Op: op, Detail: detail, Err: cause}
}

// IsUnrecoverable reports whether err is or wraps an unrecoverable fault.
func IsUnrecoverable(err error) bool {
	return errors.Is(err, ErrUnrecoverable)
}
