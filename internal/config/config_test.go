package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cropxr/drivectl/internal/errors"
)

func validConfig() *StudyConfig {
	return &StudyConfig{
		AccessionCode:              "CXRS001",
		SecurityLevel:              "internal",
		InvestigationAccessionCode: "CXRP001",
		InvestigationWorkPackage:   "WP001",
		Title:                      "Plant Stress Response Analysis",
		Slug:                       "plant-stress-response-analysis",
		PrincipalInvestigator: &Person{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.doe@example.org",
		},
		DatasetAdministrator: &Person{
			FirstName: "John",
			LastName:  "Smith",
			Email:     "john.smith@example.org",
		},
	}
}

func TestStudyConfig_Validate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() on valid config = %v, want nil", err)
	}
}

func TestStudyConfig_Validate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StudyConfig)
		field  string
	}{
		{"accession code", func(c *StudyConfig) { c.AccessionCode = "" }, "accession_code"},
		{"investigation accession code", func(c *StudyConfig) { c.InvestigationAccessionCode = "" }, "investigation_accession_code"},
		{"work package", func(c *StudyConfig) { c.InvestigationWorkPackage = " " }, "investigation_work_package"},
		{"slug", func(c *StudyConfig) { c.Slug = "" }, "slug"},
		{"pi email", func(c *StudyConfig) { c.PrincipalInvestigator.Email = "" }, "principal_investigator.email"},
		{"admin email", func(c *StudyConfig) { c.DatasetAdministrator.Email = "" }, "dataset_administrator.email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if errors.GetExitCode(err) != errors.ExitMissingField {
				t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitMissingField)
			}
		})
	}
}

func TestStudyConfig_Validate_OptionalPersons(t *testing.T) {
	cfg := validConfig()
	cfg.PrincipalInvestigator = nil
	cfg.DatasetAdministrator = nil

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() without persons = %v, want nil", err)
	}
}

func TestStudyConfig_Validate_InvalidLevel(t *testing.T) {
	cfg := validConfig()
	cfg.SecurityLevel = "SECRET"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if errors.GetExitCode(err) != errors.ExitInvalidLevel {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitInvalidLevel)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    SecurityLevel
		wantErr bool
	}{
		{"PUBLIC", LevelPublic, false},
		{"public", LevelPublic, false},
		{"Internal", LevelInternal, false},
		{"CONFIDENTIAL", LevelConfidential, false},
		{" restricted ", LevelRestricted, false},
		{"SECRET", LevelUnspecified, true},
		{"", LevelUnspecified, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadStudyConfig_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "study.json")

	data := `{
		"accession_code": "CXRS001",
		"investigation_accession_code": "CXRP001",
		"investigation_work_package": "WP001",
		"slug": "plant-stress-response-analysis",
		"security_level": "INTERNAL",
		"principal_investigator": {"first_name": "Jane", "last_name": "Doe", "email": "jane@example.org"}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadStudyConfig(path)
	if err != nil {
		t.Fatalf("LoadStudyConfig() error = %v", err)
	}
	if cfg.AccessionCode != "CXRS001" {
		t.Errorf("AccessionCode = %q, want CXRS001", cfg.AccessionCode)
	}
	if cfg.PrincipalInvestigator == nil || cfg.PrincipalInvestigator.Email != "jane@example.org" {
		t.Errorf("PrincipalInvestigator not parsed: %+v", cfg.PrincipalInvestigator)
	}
}

func TestLoadStudyConfig_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "study.yaml")

	data := `accession_code: CXRS001
investigation_accession_code: CXRP001
investigation_work_package: WP001
slug: plant-stress-response-analysis
security_level: RESTRICTED
dataset_administrator:
  first_name: John
  last_name: Smith
  email: john@example.org
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadStudyConfig(path)
	if err != nil {
		t.Fatalf("LoadStudyConfig() error = %v", err)
	}
	if cfg.Level() != LevelRestricted {
		t.Errorf("Level() = %q, want RESTRICTED", cfg.Level())
	}
	if cfg.DatasetAdministrator == nil || cfg.DatasetAdministrator.FullName() != "John Smith" {
		t.Errorf("DatasetAdministrator not parsed: %+v", cfg.DatasetAdministrator)
	}
}

func TestLoadStudyConfig_Malformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "study.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadStudyConfig(path)
	if err == nil {
		t.Fatal("LoadStudyConfig() = nil, want parse error")
	}
	if errors.GetExitCode(err) != errors.ExitConfigParse {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitConfigParse)
	}
}

func TestPerson_Display(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{"full", Person{FirstName: "Jane", LastName: "Doe", Email: "jane@example.org"}, "Jane Doe (jane@example.org)"},
		{"no email", Person{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"email only", Person{Email: "jane@example.org"}, "jane@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDefaults_MissingFile(t *testing.T) {
	d, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	if d.TargetPath != "." {
		t.Errorf("TargetPath = %q, want .", d.TargetPath)
	}
	if d.ContactEmail != DefaultContactEmail {
		t.Errorf("ContactEmail = %q, want %q", d.ContactEmail, DefaultContactEmail)
	}
	if d.SecretsClient != DefaultSecretsClient {
		t.Errorf("SecretsClient = %q, want %q", d.SecretsClient, DefaultSecretsClient)
	}
}

func TestLoadDefaults_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	data := "target_path = \"/srv/research-drive\"\ncontact_email = \"support@example.org\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write defaults: %v", err)
	}

	d, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	if d.TargetPath != "/srv/research-drive" {
		t.Errorf("TargetPath = %q, want /srv/research-drive", d.TargetPath)
	}
	if d.ContactEmail != "support@example.org" {
		t.Errorf("ContactEmail = %q, want support@example.org", d.ContactEmail)
	}
	if d.StateDir == "" {
		t.Error("StateDir should fall back to a non-empty default")
	}
}

func TestLoadDefaults_Malformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("target_path = [broken"), 0644); err != nil {
		t.Fatalf("Failed to write defaults: %v", err)
	}

	if _, err := LoadDefaults(path); err == nil {
		t.Fatal("LoadDefaults() = nil, want parse error")
	}
}
