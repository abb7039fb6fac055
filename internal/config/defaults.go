package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cropxr/drivectl/internal/errors"
)

// Built-in fallbacks used when the defaults file carries no value.
const (
	DefaultContactEmail  = "dataxr@cropxr.org"
	DefaultSecretsClient = "op"
)

// Defaults holds tool-level defaults loaded from the optional TOML file at
// ~/.config/drivectl/config.toml. Every field can be overridden per
// invocation by flags.
type Defaults struct {
	TargetPath    string `toml:"target_path"`
	ContactEmail  string `toml:"contact_email"`
	StateDir      string `toml:"state_dir"`
	SecretsClient string `toml:"secrets_client"`
}

// DefaultsPath returns the path of the tool defaults file.
func DefaultsPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "drivectl", "config.toml")
}

// defaultStateDir returns the fallback state directory for audit logs.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "drivectl")
	}
	return filepath.Join(home, ".local", "state", "drivectl")
}

// LoadDefaults reads tool defaults from path. A missing file is not an
// error; it yields the built-in fallbacks. An unparsable file is reported.
func LoadDefaults(path string) (*Defaults, error) {
	d := &Defaults{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, d); err != nil {
				return nil, errors.ConfigParse(path, err)
			}
		}
	}

	if d.TargetPath == "" {
		d.TargetPath = "."
	}
	if d.ContactEmail == "" {
		d.ContactEmail = DefaultContactEmail
	}
	if d.StateDir == "" {
		d.StateDir = defaultStateDir()
	}
	if d.SecretsClient == "" {
		d.SecretsClient = DefaultSecretsClient
	}

	return d, nil
}
