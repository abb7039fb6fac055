// Package notify renders the notification text sent to researchers after
// their study folder has been provisioned. Rendering is pure; the text is
// printed, never written to a file.
package notify

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/policy"
	"github.com/cropxr/drivectl/internal/study"
)

// now is stubbed in tests.
var now = time.Now

type grantedUser struct {
	Display string
	Role    string
}

type templateData struct {
	StudyTitle         string
	InvestigationLabel string
	StudyLabel         string
	Workpackage        string
	FolderName         string
	DateCreated        string
	PIName             string
	PIEmail            string
	Level              config.SecurityLevel
	Users              []grantedUser
	SupportEmail       string
}

const notificationTemplateText = `Dear Researchers,

Your study folder has been successfully created in the CropXR Research Drive.

Study Details:
- Study Title: {{.StudyTitle | orNA}}
- Investigation Label: {{.InvestigationLabel}}
- Study Label: {{.StudyLabel}}
- Workpackage: {{.Workpackage}}
- Folder Name: {{.FolderName}}
- Date Created: {{.DateCreated}}
- Principal Investigator: {{.PIName | orNA}}
- Contact Email: {{.PIEmail | orNA}}
- Data Sensitivity Level: {{if .Level}}{{.Level}}{{else}}Not specified{{end}}

Access Rights:
The following users have been granted {{accessLevel}} access to this folder:
{{- if .Users}}
{{- range .Users}}
  - {{.Display}} ({{.Role}})
{{- end}}
{{- else}}
  - No users with {{accessLevel}} access found
{{- end}}

Important Notes:
- Please review the {{policyFile}} file in your study folder for detailed access control and data handling policies
- Raw data must never be modified and should be stored in the designated raw data folder
- All folder naming follows the convention: {{.InvestigationLabel}}-{{.StudyLabel}}_[FOLDER_TYPE]
- For any questions or support, contact the Data Engineering Team at {{.SupportEmail}}

Best regards,
CropXR Data Management Team`

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

var notificationTemplate *template.Template

func init() {
	funcs := template.FuncMap{
		"orNA":        orNA,
		"accessLevel": func() string { return policy.AccessLevel },
		"policyFile":  func() string { return policy.FileName },
	}
	notificationTemplate = template.Must(template.New("notification").Funcs(funcs).Parse(notificationTemplateText))
}

// Render produces the notification text for a provisioned study.
func Render(cfg *config.StudyConfig, names study.Names, contactEmail string) (string, error) {
	var users []grantedUser
	if cfg.PrincipalInvestigator != nil {
		users = append(users, grantedUser{
			Display: cfg.PrincipalInvestigator.Display(),
			Role:    "Principal Investigator",
		})
	}
	if cfg.DatasetAdministrator != nil {
		users = append(users, grantedUser{
			Display: cfg.DatasetAdministrator.Display(),
			Role:    "Dataset Administrator",
		})
	}

	piName, piEmail := "", ""
	if cfg.PrincipalInvestigator != nil {
		piName = cfg.PrincipalInvestigator.FullName()
		piEmail = cfg.PrincipalInvestigator.Email
	}

	data := templateData{
		StudyTitle:         cfg.Title,
		InvestigationLabel: names.InvestigationLabel,
		StudyLabel:         names.StudyLabel,
		Workpackage:        names.Workpackage,
		FolderName:         names.StudyFolder,
		DateCreated:        now().Format("2006-01-02"),
		PIName:             piName,
		PIEmail:            piEmail,
		Level:              cfg.Level(),
		Users:              users,
		SupportEmail:       contactEmail,
	}

	var b strings.Builder
	if err := notificationTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render notification: %w", err)
	}
	return b.String(), nil
}
