package cmd

import (
	"strings"

	"github.com/cropxr/drivectl/internal/audit"
	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/logging"
)

// toolDefaults loads the optional TOML defaults file.
func toolDefaults() (*config.Defaults, error) {
	return config.LoadDefaults(config.DefaultsPath())
}

// newAuditLogger returns the audit logger for the configured state
// directory. The --state-dir flag wins over the defaults file.
func newAuditLogger(defaults *config.Defaults) *audit.Logger {
	dir := stateDir
	if dir == "" {
		dir = defaults.StateDir
	}
	return audit.NewLogger(dir)
}

// recordEvent appends an audit event, downgrading failures to a log warning
// so bookkeeping never fails the provisioning itself.
func recordEvent(logger *audit.Logger, eventType audit.EventType, study, details string) {
	if err := logger.LogEvent(eventType, study, details); err != nil {
		logging.Warn("failed to record audit event", "type", eventType, "error", err)
	}
}

// personFromFlags builds a Person from free-form name and email flags. The
// name is split on its last space. Both flags empty means no person.
func personFromFlags(name, email string) *config.Person {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" && email == "" {
		return nil
	}

	first, last := name, ""
	if idx := strings.LastIndex(name, " "); idx >= 0 {
		first, last = name[:idx], name[idx+1:]
	}
	return &config.Person{FirstName: first, LastName: last, Email: email}
}
