package testutil

import (
	"embed"
	"encoding/json"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/study"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadStudyConfigFixture loads a study config fixture.
func LoadStudyConfigFixture(name string) (*config.StudyConfig, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var cfg config.StudyConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStructureFixture loads a folder structure fixture.
func LoadStructureFixture(name string) (study.Structure, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var structure study.Structure
	if err := json.Unmarshal(data, &structure); err != nil {
		return nil, err
	}
	return structure, nil
}

// ValidStudyConfig returns the valid study config fixture.
func ValidStudyConfig() (*config.StudyConfig, error) {
	return LoadStudyConfigFixture("valid_study_config.json")
}

// InvalidStudyConfig returns the study config fixture that fails validation.
func InvalidStudyConfig() (*config.StudyConfig, error) {
	return LoadStudyConfigFixture("invalid_study_config.json")
}

// CustomStructure returns the custom folder structure fixture.
func CustomStructure() (study.Structure, error) {
	return LoadStructureFixture("custom_structure.json")
}
