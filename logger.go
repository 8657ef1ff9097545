package hmd

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger for hmd and all its sub-packages.
// By default hmd produces no log output. Pass nil to restore silence.
//
// SetLogger is safe for concurrent use.
//
// Log levels used by hmd:
//   - [slog.LevelDebug]: probe results, absent runtime, swap chain (re)creation
//   - [slog.LevelInfo]: session opened or torn down
//   - [slog.LevelWarn]: recoverable runtime failures, with the runtime's error string
//   - [slog.LevelError]: unrecoverable faults, logged before they are returned
//
// Example:
//
//	hmd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by hmd.
// Sub-packages call this so they all share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
