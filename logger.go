package d3

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip building attributes entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. The event loop logs from the main
// thread, but SetLogger may be called from anywhere.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for d3 and all its sub-packages.
// By default, d3 produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by d3:
//   - [slog.LevelDebug]: per-event diagnostics (dropped keys, surface reconfiguration)
//   - [slog.LevelInfo]: lifecycle events (adapter selected, window created)
//   - [slog.LevelWarn]: recoverable failures (skipped frames, cursor grab errors)
//
// Example:
//
//	d3.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by d3.
// Sub-packages call this so that a single SetLogger call configures
// the whole harness.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
