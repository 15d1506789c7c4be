package motif

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

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while jobs are running.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for motif and its sub-packages.
// By default motif produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by motif:
//   - [slog.LevelDebug]: per-job diagnostics (path length, replica count)
//   - [slog.LevelInfo]: job lifecycle (admitted, finished)
//   - [slog.LevelWarn]: failed jobs, timeouts, cleanup errors
//
// Example:
//
//	motif.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by motif.
// Sub-packages (worker/, api/) call this to share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
