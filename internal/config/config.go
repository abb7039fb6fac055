package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cropxr/drivectl/internal/errors"
)

// Person identifies someone granted access to a study folder.
type Person struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
}

// FullName returns "First Last", tolerating missing parts.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Display returns "First Last (email)" for policy tables and notifications.
func (p *Person) Display() string {
	name := p.FullName()
	if p.Email == "" {
		return name
	}
	if name == "" {
		return p.Email
	}
	return fmt.Sprintf("%s (%s)", name, p.Email)
}

// StudyConfig describes a single study to provision. It is assembled once per
// invocation, from a config file or from discrete flags, and is immutable
// afterwards.
type StudyConfig struct {
	AccessionCode              string  `json:"accession_code" yaml:"accession_code"`
	SecurityLevel              string  `json:"security_level,omitempty" yaml:"security_level,omitempty"`
	InvestigationAccessionCode string  `json:"investigation_accession_code" yaml:"investigation_accession_code"`
	InvestigationWorkPackage   string  `json:"investigation_work_package" yaml:"investigation_work_package"`
	InvestigationTitle         string  `json:"investigation_title,omitempty" yaml:"investigation_title,omitempty"`
	Title                      string  `json:"title,omitempty" yaml:"title,omitempty"`
	Slug                       string  `json:"slug" yaml:"slug"`
	Description                string  `json:"description,omitempty" yaml:"description,omitempty"`
	FolderName                 string  `json:"folder_name,omitempty" yaml:"folder_name,omitempty"`
	PrincipalInvestigator      *Person `json:"principal_investigator,omitempty" yaml:"principal_investigator,omitempty"`
	DatasetAdministrator       *Person `json:"dataset_administrator,omitempty" yaml:"dataset_administrator,omitempty"`
}

// Validate checks required fields and the security level. It runs before any
// filesystem mutation.
func (c *StudyConfig) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"accession_code", c.AccessionCode},
		{"investigation_accession_code", c.InvestigationAccessionCode},
		{"investigation_work_package", c.InvestigationWorkPackage},
		{"slug", c.Slug},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return errors.MissingField(f.name)
		}
	}

	if c.PrincipalInvestigator != nil && strings.TrimSpace(c.PrincipalInvestigator.Email) == "" {
		return errors.MissingField("principal_investigator.email")
	}
	if c.DatasetAdministrator != nil && strings.TrimSpace(c.DatasetAdministrator.Email) == "" {
		return errors.MissingField("dataset_administrator.email")
	}

	if c.SecurityLevel != "" {
		if _, err := ParseLevel(c.SecurityLevel); err != nil {
			return err
		}
	}

	return nil
}

// Level returns the parsed security level, or LevelUnspecified when the
// config carries none.
func (c *StudyConfig) Level() SecurityLevel {
	if c.SecurityLevel == "" {
		return LevelUnspecified
	}
	level, err := ParseLevel(c.SecurityLevel)
	if err != nil {
		return LevelUnspecified
	}
	return level
}

// LoadStudyConfig reads a study configuration from a JSON or YAML file,
// selected by extension (.yaml/.yml parse as YAML, everything else as JSON).
// The returned config is not yet validated.
func LoadStudyConfig(path string) (*StudyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigParse(path, err)
	}

	var cfg StudyConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, errors.ConfigParse(path, err)
	}

	return &cfg, nil
}
