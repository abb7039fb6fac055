package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cropxr/drivectl/internal/audit"
	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/errors"
	"github.com/cropxr/drivectl/internal/logging"
	"github.com/cropxr/drivectl/internal/notify"
	"github.com/cropxr/drivectl/internal/policy"
	"github.com/cropxr/drivectl/internal/study"
	"github.com/cropxr/drivectl/internal/tui"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a study folder tree with its folder policy",
	Long: `create builds the standardized study folder tree on the research drive.

The study identity comes from a config file (--study-config), from discrete
flags, or from the interactive wizard (--interactive). Creation is additive:
existing directories are never modified or deleted, and an existing
FOLDER_POLICY.md is only replaced with --overwrite (the prior file is backed
up first).`,
	RunE: runCreate,
}

var (
	createConfigFile  string
	createInteractive bool

	createAccession          string
	createInvestigation      string
	createWorkpackage        string
	createSlug               string
	createTitle              string
	createInvestigationTitle string
	createDescription        string
	createSensitivity        string
	createFolderName         string
	createPIName             string
	createPIEmail            string
	createAdminName          string
	createAdminEmail         string

	createTarget              string
	createStructureFile       string
	createOverwrite           bool
	createInvestigationFolder bool
	createNoNotification      bool
	createContactEmail        string
)

// studyFlags describe the study itself and conflict with --study-config.
var studyFlags = []string{
	"accession", "investigation", "work-package", "slug", "title",
	"investigation-title", "description", "sensitivity", "folder-name",
	"pi-name", "pi-email", "admin-name", "admin-email",
}

func init() {
	createCmd.Flags().StringVarP(&createConfigFile, "study-config", "c", "", "Study config file (JSON or YAML)")
	createCmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "Assemble the study config interactively")

	createCmd.Flags().StringVar(&createAccession, "accession", "", "Study accession code (e.g. CXRS001)")
	createCmd.Flags().StringVar(&createInvestigation, "investigation", "", "Investigation accession code (e.g. CXRP001)")
	createCmd.Flags().StringVar(&createWorkpackage, "work-package", "", "Investigation work package (e.g. WP001)")
	createCmd.Flags().StringVar(&createSlug, "slug", "", "Short descriptive slug for the folder name")
	createCmd.Flags().StringVar(&createTitle, "title", "", "Human-readable study title")
	createCmd.Flags().StringVar(&createInvestigationTitle, "investigation-title", "", "Human-readable investigation title")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Study description")
	createCmd.Flags().StringVar(&createSensitivity, "sensitivity", "", "Security level: PUBLIC, INTERNAL, CONFIDENTIAL, or RESTRICTED")
	createCmd.Flags().StringVar(&createFolderName, "folder-name", "", "Override the derived study folder name verbatim")
	createCmd.Flags().StringVar(&createPIName, "pi-name", "", "Principal investigator full name")
	createCmd.Flags().StringVar(&createPIEmail, "pi-email", "", "Principal investigator email")
	createCmd.Flags().StringVar(&createAdminName, "admin-name", "", "Dataset administrator full name")
	createCmd.Flags().StringVar(&createAdminEmail, "admin-email", "", "Dataset administrator email")

	createCmd.Flags().StringVarP(&createTarget, "target", "t", "", "Target directory (default from config.toml, else current directory)")
	createCmd.Flags().StringVar(&createStructureFile, "structure-file", "", "JSON file overriding the default {raw, processed, metadata} layout")
	createCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "Replace an existing FOLDER_POLICY.md (a backup is kept)")
	createCmd.Flags().BoolVar(&createInvestigationFolder, "create-investigation-folder", false, "Nest the study folder inside its investigation folder")
	createCmd.Flags().BoolVar(&createNoNotification, "no-notification", false, "Skip printing the notification email text")
	createCmd.Flags().StringVar(&createContactEmail, "contact-email", "", "Support contact shown in policy and notification")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	defaults, err := toolDefaults()
	if err != nil {
		return err
	}

	cfg, err := assembleStudyConfig(cmd)
	if err != nil {
		return err
	}

	target := createTarget
	if target == "" {
		target = defaults.TargetPath
	}
	contactEmail := createContactEmail
	if contactEmail == "" {
		contactEmail = defaults.ContactEmail
	}

	var structure study.Structure
	if createStructureFile != "" {
		structure, err = study.LoadStructure(createStructureFile)
		if err != nil {
			return err
		}
	}

	logging.Debug("starting study creation",
		"accession", cfg.AccessionCode, "target", target)

	result, err := study.Create(cfg, study.Options{
		TargetPath:                target,
		CreateInvestigationFolder: createInvestigationFolder,
		Structure:                 structure,
	})
	if err != nil {
		return err
	}
	logging.WithStudy(result.Names.StudyFolder).Debug("directories materialized",
		"created", len(result.Created))

	auditLogger := newAuditLogger(defaults)
	recordEvent(auditLogger, audit.EventCreate, result.Names.StudyFolder,
		fmt.Sprintf("%d directories created", len(result.Created)))

	policyResult, err := policy.Write(result.StudyPath, cfg, result.Names, contactEmail, createOverwrite)
	if err != nil {
		recordEvent(auditLogger, audit.EventError, result.Names.StudyFolder, err.Error())
		return err
	}
	recordEvent(auditLogger, audit.EventPolicy, result.Names.StudyFolder, policyResult.Status.String())

	displayCreateResult(result, policyResult)

	if !createNoNotification {
		text, err := notify.Render(cfg, result.Names, contactEmail)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("--- Notification email ---")
		fmt.Println()
		fmt.Print(text)
	}

	return nil
}

// assembleStudyConfig builds the study config from the wizard, the config
// file, or discrete flags. The config file describes the study fully, so
// study-describing flags are rejected alongside it rather than merged.
func assembleStudyConfig(cmd *cobra.Command) (*config.StudyConfig, error) {
	if createInteractive && createConfigFile != "" {
		return nil, errors.ValidationError("--interactive cannot be combined with --study-config")
	}

	if createConfigFile != "" {
		for _, name := range studyFlags {
			if cmd.Flags().Changed(name) {
				return nil, errors.ValidationError(
					fmt.Sprintf("--%s cannot be combined with --study-config; edit the config file instead", name))
			}
		}
		return config.LoadStudyConfig(createConfigFile)
	}

	if createInteractive {
		cfg, err := tui.RunWizard()
		if err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				return nil, errors.New(errors.ExitGeneralError, "cancelled")
			}
			return nil, err
		}
		return cfg, nil
	}

	return &config.StudyConfig{
		AccessionCode:              createAccession,
		SecurityLevel:              createSensitivity,
		InvestigationAccessionCode: createInvestigation,
		InvestigationWorkPackage:   createWorkpackage,
		InvestigationTitle:         createInvestigationTitle,
		Title:                      createTitle,
		Slug:                       createSlug,
		Description:                createDescription,
		FolderName:                 createFolderName,
		PrincipalInvestigator:      personFromFlags(createPIName, createPIEmail),
		DatasetAdministrator:       personFromFlags(createAdminName, createAdminEmail),
	}, nil
}

var (
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	summaryValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func summaryLine(label, value string) {
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render(label+":"), summaryValueStyle.Render(value))
}

// displayCreateResult shows the creation outcome to the user.
func displayCreateResult(result *study.Result, policyResult *policy.WriteResult) {
	logSuccess("Study folder %s ready", result.Names.StudyFolder)
	if result.InvestigationPath != "" {
		summaryLine("Investigation", result.InvestigationPath)
	}
	summaryLine("Path", result.StudyPath)
	if len(result.Created) == 0 {
		summaryLine("Directories", "all present already")
	} else {
		summaryLine("Directories", fmt.Sprintf("%d created", len(result.Created)))
	}

	switch policyResult.Status {
	case policy.StatusCreated:
		summaryLine("Policy", policyResult.Path)
	case policy.StatusOverwritten:
		summaryLine("Policy", policyResult.Path)
		logInfo("Previous policy backed up to %s", policyResult.BackupPath)
	case policy.StatusSkipped:
		logWarning("Policy %s already exists; use --overwrite to replace it", policyResult.Path)
	}
}
