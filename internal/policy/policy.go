// Package policy renders and writes the FOLDER_POLICY.md document placed at
// the root of every study folder.
package policy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/errors"
	"github.com/cropxr/drivectl/internal/logging"
	"github.com/cropxr/drivectl/internal/study"
)

// FileName is the policy document name inside a study folder.
const FileName = "FOLDER_POLICY.md"

// AccessLevel granted to the PI and dataset administrator.
const AccessLevel = "READ-WRITE-SHARE"

// backupStamp is the sortable timestamp suffix format for policy backups.
const backupStamp = "20060102_150405"

// now is stubbed in tests.
var now = time.Now

// Status describes the outcome of a policy write.
type Status int

const (
	// StatusCreated means no policy existed and a new one was written.
	StatusCreated Status = iota
	// StatusSkipped means a policy existed and overwrite was not requested.
	StatusSkipped
	// StatusOverwritten means the prior policy was backed up and replaced.
	StatusOverwritten
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusSkipped:
		return "skipped"
	case StatusOverwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// WriteResult reports what Write did.
type WriteResult struct {
	Path       string
	BackupPath string
	Status     Status
}

// accessRow is one entry of the rendered access table.
type accessRow struct {
	Name       string
	Role       string
	Access     string
	Expiration string
}

// templateData feeds the policy template.
type templateData struct {
	StudyTitle         string
	InvestigationLabel string
	StudyLabel         string
	Workpackage        string
	DateCreated        string
	ProjectLead        string
	ContactEmail       string
	Level              config.SecurityLevel
	LevelDescriptions  []config.SecurityLevel
	AccessRows         []accessRow
	SupportEmail       string
}

const policyTemplateText = `# FOLDER POLICY

## Study Information
- **Study Title**: {{.StudyTitle | orPlaceholder "[Study Title]"}}
- **Investigation Label**: {{.InvestigationLabel}}
- **Study Label**: {{.StudyLabel}}
- **Workpackage**: {{.Workpackage}}
- **Date Created**: {{.DateCreated}}
- **Project Lead**: {{.ProjectLead | orPlaceholder "[Name]"}}
- **Contact Email**: {{.ContactEmail | orPlaceholder "[Email]"}}

## Data Sensitivity Classification
**Current Sensitivity Level**: {{.Level}}

### Sensitivity Level Definitions
{{- range .LevelDescriptions}}
- **{{.}}**: {{.Description}}
{{- end}}

## Access Control

### Access
The following individuals or groups have {{accessLevel}} access to this folder structure:

| Name | Role | Access Level | Expiration Date |
|------|------|--------------|-----------------|
{{- range .AccessRows}}
| {{.Name}} | {{.Role}} | {{.Access}} | {{.Expiration}} |
{{- end}}

## Folder Naming Convention
All folders within this project follow a strict naming convention:

- All first-level folders are prefixed with: **{{.InvestigationLabel}}-{{.StudyLabel}}_**
- Examples:
  - Raw data folder: **{{.InvestigationLabel}}-{{.StudyLabel}}_raw**
  - Processed data folder: **{{.InvestigationLabel}}-{{.StudyLabel}}_processed**
  - Metadata folder: **{{.InvestigationLabel}}-{{.StudyLabel}}_metadata**

## Data Handling Policies

### Raw Data
- Raw data must never be modified
- All raw data files must be stored in the **{{.InvestigationLabel}}-{{.StudyLabel}}_raw** folder

### Other Data Folders
- All first-level folders follow the naming convention **{{.InvestigationLabel}}-{{.StudyLabel}}_[FOLDER_TYPE]**
- Files within these folders should maintain consistent naming where applicable
- Cross-references between folders should maintain traceability to original data sources

## Metadata Guidelines
- Metadata should be comprehensive and follow applicable standards
- All metadata should be stored in the metadata folder
- File naming should maintain consistency with data files

## Questions and Support
For questions regarding this policy or data management assistance, please contact:
- Data Engineering Team: {{.SupportEmail}}
`

// orPlaceholder substitutes a placeholder for empty optional fields.
func orPlaceholder(placeholder, value string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

var policyTemplate *template.Template

func init() {
	funcs := template.FuncMap{
		"orPlaceholder": orPlaceholder,
		"accessLevel":   func() string { return AccessLevel },
	}
	policyTemplate = template.Must(template.New("policy").Funcs(funcs).Parse(policyTemplateText))
}

// AccessRows builds the access table from the config: the PI and the dataset
// administrator, each with READ-WRITE-SHARE. A placeholder row is emitted
// when neither is present.
func accessRows(cfg *config.StudyConfig) []accessRow {
	var rows []accessRow
	if cfg.PrincipalInvestigator != nil {
		rows = append(rows, accessRow{
			Name:       cfg.PrincipalInvestigator.Display(),
			Role:       "Principal Investigator",
			Access:     AccessLevel,
			Expiration: "PERMANENT",
		})
	}
	if cfg.DatasetAdministrator != nil {
		rows = append(rows, accessRow{
			Name:       cfg.DatasetAdministrator.Display(),
			Role:       "Dataset Administrator",
			Access:     AccessLevel,
			Expiration: "PERMANENT",
		})
	}
	if len(rows) == 0 {
		rows = append(rows, accessRow{
			Name:       "[Name]",
			Role:       "[Role]",
			Access:     "[READ/READ-WRITE]",
			Expiration: "[YYYY-MM-DD or PERMANENT]",
		})
	}
	return rows
}

// Render produces the policy document text. It has no side effects.
func Render(cfg *config.StudyConfig, names study.Names, contactEmail string) (string, error) {
	lead := ""
	if cfg.PrincipalInvestigator != nil {
		lead = cfg.PrincipalInvestigator.FullName()
	}
	leadEmail := ""
	if cfg.PrincipalInvestigator != nil {
		leadEmail = cfg.PrincipalInvestigator.Email
	}

	data := templateData{
		StudyTitle:         cfg.Title,
		InvestigationLabel: names.InvestigationLabel,
		StudyLabel:         names.StudyLabel,
		Workpackage:        names.Workpackage,
		DateCreated:        now().Format("2006-01-02"),
		ProjectLead:        lead,
		ContactEmail:       leadEmail,
		Level:              cfg.Level(),
		LevelDescriptions:  config.Levels(),
		AccessRows:         accessRows(cfg),
		SupportEmail:       contactEmail,
	}

	var b strings.Builder
	if err := policyTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render policy document: %w", err)
	}
	return b.String(), nil
}

// Write renders the policy and places it at dir/FOLDER_POLICY.md.
//
// If the file already exists and overwrite is false, the existing content is
// authoritative: nothing is written and the result reports StatusSkipped.
// With overwrite, the prior file is first copied to a timestamped backup
// name; the overwrite is aborted if the backup cannot be made.
func Write(dir string, cfg *config.StudyConfig, names study.Names, contactEmail string, overwrite bool) (*WriteResult, error) {
	content, err := Render(cfg, names, contactEmail)
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "policy generation failed", err)
	}

	path := filepath.Join(dir, FileName)
	result := &WriteResult{Path: path, Status: StatusCreated}

	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			logging.Warn("policy file already exists, skipping", "path", path)
			result.Status = StatusSkipped
			return result, nil
		}

		backup := fmt.Sprintf("%s.bak.%s", path, now().Format(backupStamp))
		if err := copyFile(path, backup); err != nil {
			return nil, errors.Filesystem(path, fmt.Errorf("could not back up existing policy: %w", err))
		}
		result.BackupPath = backup
		result.Status = StatusOverwritten
		logging.Info("backed up existing policy file", "backup", backup)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, errors.Filesystem(path, err)
	}

	return result, nil
}

// copyFile copies src to dst, preserving src. Used for policy backups so the
// original remains readable until the new content is in place.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
