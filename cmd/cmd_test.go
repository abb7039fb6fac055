package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand runs the root command with args, resetting all flags to
// their defaults first so tests stay independent.
func executeCommand(args ...string) (string, string, error) {
	resetFlags(rootCmd)

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"drivectl", "create", "isa", "ssh-setup", "events"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCreateCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("create", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"--study-config", "--overwrite", "--structure-file", "--interactive"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("create help missing %q:\n%s", want, stdout)
		}
	}
}

func TestISACommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("isa", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(stdout, "--investigation") {
		t.Errorf("isa help missing --investigation:\n%s", stdout)
	}
}

func TestSSHSetupCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("ssh-setup", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(stdout, "--secret") {
		t.Errorf("ssh-setup help missing --secret:\n%s", stdout)
	}
}

func TestSSHSetupCommand_RequiresSecret(t *testing.T) {
	_, _, err := executeCommand("ssh-setup", "my-alias")
	if err == nil {
		t.Fatal("ssh-setup without --secret should fail")
	}
}

func TestEventsCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("events", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(stdout, "audit trail") {
		t.Errorf("events help unexpected:\n%s", stdout)
	}
}
