package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cropxr/drivectl/internal/audit"
	"github.com/cropxr/drivectl/internal/errors"
	"github.com/cropxr/drivectl/internal/sshsetup"
)

var sshSetupCmd = &cobra.Command{
	Use:   "ssh-setup <alias>",
	Short: "Provision an SSH host entry from the secrets store",
	Long: `ssh-setup reads drive credentials (host, user, port, private key) from the
secrets store CLI, writes the private key with restricted permissions, and
adds or replaces a Host block for the alias in the SSH config. Other config
entries are never touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSSHSetup,
}

var (
	sshSetupSecret  string
	sshSetupClient  string
	sshSetupDir     string
	sshSetupTest    bool
	sshSetupTimeout int
)

func init() {
	sshSetupCmd.Flags().StringVarP(&sshSetupSecret, "secret", "s", "", "Secret path in the secrets store (required)")
	sshSetupCmd.Flags().StringVar(&sshSetupClient, "client", "", "Secrets store CLI binary (default from config.toml, else op)")
	sshSetupCmd.Flags().StringVar(&sshSetupDir, "ssh-dir", "", "SSH directory for key and config (default ~/.ssh)")
	sshSetupCmd.Flags().BoolVar(&sshSetupTest, "test", false, "Run a connectivity probe after provisioning")
	sshSetupCmd.Flags().IntVar(&sshSetupTimeout, "connect-timeout", sshsetup.DefaultConnectTimeout, "Probe connect timeout in seconds")
	if err := sshSetupCmd.MarkFlagRequired("secret"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(sshSetupCmd)
}

func runSSHSetup(cmd *cobra.Command, args []string) error {
	alias := args[0]

	defaults, err := toolDefaults()
	if err != nil {
		return err
	}

	client := sshSetupClient
	if client == "" {
		client = defaults.SecretsClient
	}

	logInfo("Provisioning SSH entry %s from %s...", alias, sshSetupSecret)

	result, err := sshsetup.Provision(context.Background(), sshsetup.Options{
		SecretsClient:  client,
		SecretPath:     sshSetupSecret,
		Alias:          alias,
		SSHDir:         sshSetupDir,
		TestConnection: sshSetupTest,
		ConnectTimeout: sshSetupTimeout,
	})
	if err != nil {
		return err
	}

	recordEvent(newAuditLogger(defaults), audit.EventSSH, alias, "provisioned")

	logSuccess("SSH entry %s ready", alias)
	fmt.Printf("  Key: %s\n", result.KeyPath)
	fmt.Printf("  Config: %s\n", result.ConfigPath)
	if result.Replaced {
		fmt.Printf("  Replaced an existing entry for this alias\n")
	}
	fmt.Printf("  Connect: ssh %s\n", alias)

	if result.Tested && !result.TestOK {
		return errors.SSHError(
			fmt.Sprintf("connectivity test failed for %s (key and config were written)", alias), nil)
	}
	if result.Tested {
		logSuccess("Connectivity test passed")
	}

	return nil
}
