package fractal

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
// SetLogger can be called from the command goroutine while a host
// goroutine is rendering.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for fractal and all its sub-packages.
// By default, fractal produces no log output. Call SetLogger to enable logging.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by fractal:
//   - [slog.LevelDebug]: uniform slot lookup, resize, uniform layout
//   - [slog.LevelInfo]: lifecycle events (backend selected, viewer closed)
//   - [slog.LevelWarn]: non-fatal issues (shader link failure, frame submit errors)
//
// Example:
//
//	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by fractal.
// Sub-packages (backend/wgpu, integration/...) call this to share the same
// logger configuration without their own setters.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
