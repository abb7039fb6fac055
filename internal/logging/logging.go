package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger. Commands reconfigure it once
// at startup via Setup; until then records go to stderr at info level.
var Logger *slog.Logger

// Verbose records whether debug-level logging was requested.
var Verbose bool

func init() {
	Logger = slog.New(newHandler(os.Stderr, slog.LevelInfo, false))
}

// newHandler builds a slog handler for the requested format and level.
func newHandler(w io.Writer, level slog.Level, jsonOutput bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Setup reconfigures the global logger from the persistent CLI flags.
// verbose lowers the level to debug, jsonOutput emits one JSON object per
// record, and w overrides the destination (nil keeps stderr).
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}

	Logger = slog.New(newHandler(w, level, jsonOutput))
}

// Debug logs at debug level; visible only with --verbose.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger carrying extra attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

// WithStudy returns a logger scoped to one study folder, so every record a
// provisioning run emits carries the folder it belongs to.
func WithStudy(folder string) *slog.Logger {
	return Logger.With("study", folder)
}
