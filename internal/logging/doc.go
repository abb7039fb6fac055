// Package logging provides logging utilities for drivectl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating study folder", "name", name, "target", target)
//	logging.Warn("policy file exists", "path", path)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Loading study config %s...", file)
//	logging.UserSuccess("Study folder %s created", name)
//	logging.UserWarning("Policy file already exists, skipping: %s", path)
//	logging.UserError("Failed to create folder: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
