package uigrad

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// batchMode suppresses diagnostics when the host runs unattended.
var batchMode atomic.Bool

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for uigrad and its sub-packages.
// By default, uigrad produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by uigrad:
//   - [slog.LevelDebug]: pool bookkeeping (variant created, destroyed)
//   - [slog.LevelWarn]: base materials that cannot be pooled
//
// Example:
//
//	uigrad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by uigrad.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// SetBatchMode marks the process as running unattended (tests, asset
// pipelines, headless builds). While enabled, non-fatal diagnostics such as
// unsupported-material warnings are not emitted.
func SetBatchMode(enabled bool) {
	batchMode.Store(enabled)
}

// BatchMode reports whether diagnostics are currently suppressed.
func BatchMode() bool {
	return batchMode.Load()
}
