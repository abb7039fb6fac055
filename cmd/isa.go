package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cropxr/drivectl/internal/audit"
	"github.com/cropxr/drivectl/internal/isa"
)

var isaCmd = &cobra.Command{
	Use:   "isa <structure-file>",
	Short: "Create an ISA model project tree from a YAML structure file",
	Long: `isa materializes an ISA (Investigation, Study, Assay) model project from a
YAML structure file. Label variables like ${INVESTIGATION_LABEL} and
STUDY_LABEL_SLUG are interpolated before parsing. Mapping entries become
directories, string entries become README files or content files (keys with a
dot), and a top-level README.md summarizing the structure is generated.

Creation is additive: existing directories and files are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runISA,
}

var (
	isaTarget        string
	isaInvestigation string
	isaStudy         string
	isaAssay         string
)

func init() {
	isaCmd.Flags().StringVarP(&isaTarget, "target", "t", ".", "Target directory for the project tree")
	isaCmd.Flags().StringVar(&isaInvestigation, "investigation", "", "Investigation label (e.g. CXRP001)")
	isaCmd.Flags().StringVar(&isaStudy, "study", "", "Study label (e.g. CXRS001)")
	isaCmd.Flags().StringVar(&isaAssay, "assay", "", "Assay label (e.g. CXRA001)")
	if err := isaCmd.MarkFlagRequired("investigation"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(isaCmd)
}

func runISA(cmd *cobra.Command, args []string) error {
	defaults, err := toolDefaults()
	if err != nil {
		return err
	}

	labels := isa.Labels{
		Investigation: isaInvestigation,
		Study:         isaStudy,
		Assay:         isaAssay,
	}

	result, err := isa.Run(args[0], isaTarget, labels)
	if err != nil {
		return err
	}

	recordEvent(newAuditLogger(defaults), audit.EventISA, "i_"+labels.Investigation,
		fmt.Sprintf("%d directories, %d files", len(result.CreatedDirs), len(result.Files)))

	logSuccess("ISA project tree ready under %s", result.TargetPath)
	if len(result.CreatedDirs) == 0 && len(result.Files) == 0 {
		fmt.Printf("  Everything present already\n")
	} else {
		fmt.Printf("  Directories: %d created\n", len(result.CreatedDirs))
		fmt.Printf("  Files: %d written\n", len(result.Files))
	}
	if result.ReadmePath != "" {
		fmt.Printf("  README: %s\n", result.ReadmePath)
	}

	return nil
}
