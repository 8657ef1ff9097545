package hmd

import (
	"fmt"

	"github.com/gogpu/hmd/backend"
)

// BackendError returns the runtime's last error string, or "" for a nil
// source.
func BackendError(src backend.ErrorReporter) string {
	if src == nil {
		return ""
	}
	return src.LastError().String()
}

// Warn logs a recoverable runtime failure together with the runtime's error
// string and returns an error wrapping ErrBackend.
func Warn(src backend.ErrorReporter, what string) error {
	detail := BackendError(src)
	Logger().Warn(what, "error", detail)
	return fmt.Errorf("%w: %s: %s", ErrBackend, what, detail)
}

// Fatal logs an unrecoverable runtime fault together with the runtime's
// error string and returns it as an *UnrecoverableError. cause may be nil.
func Fatal(src backend.ErrorReporter, op, what string, cause error) *UnrecoverableError {
	detail := BackendError(src)
	Logger().Error(what, "op", op, "error", detail)
	if detail != "" {
		what += " (" + detail + ")"
	}
	return Unrecoverable(op, cause, "%s", what)
}
