package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing console output, kept apart from the structured log so that
// --json never garbles what the operator reads. Informational and success
// messages go to stdout; warnings and errors to stderr.

func userf(w io.Writer, glyph, format string, args ...any) {
	fmt.Fprintf(w, glyph+" "+format+"\n", args...)
}

// UserInfo reports progress on stdout.
func UserInfo(format string, args ...any) {
	userf(os.Stdout, "ℹ", format, args...)
}

// UserSuccess reports a completed step on stdout.
func UserSuccess(format string, args ...any) {
	userf(os.Stdout, "✓", format, args...)
}

// UserWarning reports a recoverable problem on stderr.
func UserWarning(format string, args ...any) {
	userf(os.Stderr, "⚠", format, args...)
}

// UserError reports a failure on stderr.
func UserError(format string, args ...any) {
	userf(os.Stderr, "✗", format, args...)
}
