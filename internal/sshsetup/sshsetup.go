// Package sshsetup provisions an SSH host entry from credentials held in a
// secrets store: it fetches the secret, writes the private key with
// restricted permissions, and upserts a Host block in the user's SSH config.
package sshsetup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/cropxr/drivectl/internal/errors"
	"github.com/cropxr/drivectl/internal/logging"
	"github.com/cropxr/drivectl/internal/system"
)

// Default connection values.
const (
	DefaultPort           = 22
	DefaultConnectTimeout = 5
)

// Credentials is the JSON document returned by the secrets client.
type Credentials struct {
	Host       string `json:"host"`
	User       string `json:"user"`
	Port       int    `json:"port,omitempty"`
	PrivateKey string `json:"private_key"`
}

// Validate checks that the secret carries everything needed for a host entry.
func (c *Credentials) Validate() error {
	if c.Host == "" {
		return errors.SSHError("secret is missing the host field", nil)
	}
	if c.User == "" {
		return errors.SSHError("secret is missing the user field", nil)
	}
	if c.PrivateKey == "" {
		return errors.SSHError("secret is missing the private_key field", nil)
	}
	return nil
}

// Options configures a provisioning run.
type Options struct {
	// SecretsClient is the secrets store CLI binary (e.g. "op").
	SecretsClient string

	// SecretPath is the client-specific path of the secret to read.
	SecretPath string

	// Alias is the Host alias written to the SSH config.
	Alias string

	// SSHDir is the directory for the key file and config
	// (default: ~/.ssh).
	SSHDir string

	// TestConnection runs a BatchMode connectivity probe after provisioning.
	TestConnection bool

	// ConnectTimeout in seconds for the probe.
	ConnectTimeout int

	// Executor runs the secrets client and ssh. Defaults to the real one.
	Executor system.CommandExecutor
}

// Result reports what Provision did.
type Result struct {
	KeyPath    string
	ConfigPath string

	// Replaced is true when an existing Host block for the alias was
	// replaced rather than appended.
	Replaced bool

	Tested bool
	TestOK bool
}

// aliasPattern matches safe host aliases for config blocks and file names.
var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// FetchCredentials reads and decodes the named secret from the secrets
// client. The client is expected to print a JSON object with host, user,
// port, and private_key fields ("<client> get <path>").
func FetchCredentials(ctx context.Context, exec system.CommandExecutor, client, secretPath string) (*Credentials, error) {
	output, err := exec.Execute(ctx, client, "get", secretPath)
	if err != nil {
		return nil, errors.SSHError(fmt.Sprintf("failed to read secret %s", secretPath), err)
	}

	var creds Credentials
	if err := json.Unmarshal(output, &creds); err != nil {
		return nil, errors.SSHError(fmt.Sprintf("secret %s is not valid JSON", secretPath), err)
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if creds.Port == 0 {
		creds.Port = DefaultPort
	}

	return &creds, nil
}

// Provision runs the full flow: fetch secret, write key, upsert config
// block, optional connectivity probe.
func Provision(ctx context.Context, opts Options) (*Result, error) {
	if opts.Alias == "" || !aliasPattern.MatchString(opts.Alias) {
		return nil, errors.ValidationError(fmt.Sprintf("invalid host alias %q", opts.Alias))
	}
	if opts.SecretPath == "" {
		return nil, errors.ValidationError("secret path is required")
	}

	exec := opts.Executor
	if exec == nil {
		exec = system.DefaultExecutor()
	}

	sshDir := opts.SSHDir
	if sshDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.SSHError("cannot determine home directory", err)
		}
		sshDir = filepath.Join(home, ".ssh")
	}

	creds, err := FetchCredentials(ctx, exec, opts.SecretsClient, opts.SecretPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(sshDir, 0700); err != nil {
		return nil, errors.Filesystem(sshDir, err)
	}

	keyPath := filepath.Join(sshDir, opts.Alias+"_key")
	key := creds.PrivateKey
	if !strings.HasSuffix(key, "\n") {
		key += "\n"
	}
	if err := os.WriteFile(keyPath, []byte(key), 0600); err != nil {
		return nil, errors.Filesystem(keyPath, err)
	}
	logging.Debug("wrote private key", "path", keyPath)

	configPath := filepath.Join(sshDir, "config")
	replaced, err := upsertHostBlock(configPath, opts.Alias, creds, keyPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		KeyPath:    keyPath,
		ConfigPath: configPath,
		Replaced:   replaced,
	}

	if opts.TestConnection {
		result.Tested = true
		result.TestOK = checkConnection(ctx, exec, opts.Alias, opts.ConnectTimeout)
	}

	return result, nil
}

// hostBlock renders the config entry for an alias.
func hostBlock(alias string, creds *Credentials, keyPath string) string {
	return fmt.Sprintf(`Host %s
    HostName %s
    User %s
    Port %d
    IdentityFile %s
    IdentitiesOnly yes
`, alias, creds.Host, creds.User, creds.Port, keyPath)
}

// upsertHostBlock appends a Host block for alias, replacing any existing
// block with the same alias. Other entries are never touched.
func upsertHostBlock(configPath, alias string, creds *Credentials, keyPath string) (bool, error) {
	existing, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Filesystem(configPath, err)
	}

	// A block runs from its "Host <alias>" line to the next Host/Match
	// keyword or EOF. Everything outside the matching block is kept as-is.
	var kept []string
	replaced := false
	skipping := false
	for _, line := range strings.Split(string(existing), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && (fields[0] == "Host" || fields[0] == "Match") {
			if fields[0] == "Host" && len(fields) == 2 && fields[1] == alias {
				skipping = true
				replaced = true
				continue
			}
			skipping = false
		}
		if !skipping {
			kept = append(kept, line)
		}
	}

	content := strings.Join(kept, "\n")
	content = strings.TrimRight(content, "\n")
	if content != "" {
		content += "\n\n"
	}
	content += hostBlock(alias, creds, keyPath)

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return false, errors.Filesystem(configPath, err)
	}

	if replaced {
		logging.Info("replaced SSH config entry", "alias", alias)
	} else {
		logging.Info("added SSH config entry", "alias", alias)
	}
	return replaced, nil
}

// checkConnection runs a BatchMode probe against the provisioned alias.
func checkConnection(ctx context.Context, exec system.CommandExecutor, alias string, timeout int) bool {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	remoteCmd := shellquote.Join("true")
	args := []string{
		"-o", "BatchMode=yes",
		"-o", "StrictHostKeyChecking=accept-new",
		"-o", fmt.Sprintf("ConnectTimeout=%d", timeout),
		alias,
		remoteCmd,
	}

	if _, err := exec.Execute(ctx, "ssh", args...); err != nil {
		logging.Warn("connectivity test failed", "alias", alias, "error", err)
		return false
	}
	return true
}
