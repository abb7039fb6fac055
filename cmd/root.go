package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cropxr/drivectl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	stateDir   string
)

var rootCmd = &cobra.Command{
	Use:   "drivectl",
	Short: "CropXR research drive provisioning CLI",
	Long: `drivectl provisions standardized study folders on the CropXR research drive.

Each study folder carries:
  - A naming convention derived from work package, investigation, and study labels
  - Category subfolders for raw data, processed data, and metadata
  - A FOLDER_POLICY.md documenting sensitivity level and access
  - An audit trail of provisioning events`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Audit log directory (default from config.toml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
