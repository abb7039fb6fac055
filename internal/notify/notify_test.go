package notify

import (
	"strings"
	"testing"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/study"
)

func testConfig() *config.StudyConfig {
	return &config.StudyConfig{
		AccessionCode:              "CXRS001",
		SecurityLevel:              "INTERNAL",
		InvestigationAccessionCode: "CXRP001",
		InvestigationWorkPackage:   "WP001",
		Title:                      "Plant Stress Response Analysis",
		Slug:                       "plant-stress-response-analysis",
		PrincipalInvestigator: &config.Person{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.doe@example.org",
		},
		DatasetAdministrator: &config.Person{
			FirstName: "John",
			LastName:  "Smith",
			Email:     "john.smith@example.org",
		},
	}
}

func render(t *testing.T, cfg *config.StudyConfig) string {
	t.Helper()
	names, err := study.DeriveNames(cfg)
	if err != nil {
		t.Fatalf("DeriveNames() error = %v", err)
	}
	text, err := Render(cfg, names, "dataxr@cropxr.org")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return text
}

func TestRender(t *testing.T) {
	text := render(t, testConfig())

	wantFragments := []string{
		"Dear Researchers,",
		"- Study Title: Plant Stress Response Analysis",
		"- Folder Name: s_WP001-CXRP001-CXRS001_plant-stress-response-analysis",
		"- Data Sensitivity Level: INTERNAL",
		"  - Jane Doe (jane.doe@example.org) (Principal Investigator)",
		"  - John Smith (john.smith@example.org) (Dataset Administrator)",
		"CXRP001-CXRS001_[FOLDER_TYPE]",
		"contact the Data Engineering Team at dataxr@cropxr.org",
		"CropXR Data Management Team",
	}
	for _, want := range wantFragments {
		if !strings.Contains(text, want) {
			t.Errorf("notification missing %q\n---\n%s", want, text)
		}
	}
}

func TestRender_NoUsers(t *testing.T) {
	cfg := testConfig()
	cfg.PrincipalInvestigator = nil
	cfg.DatasetAdministrator = nil

	text := render(t, cfg)

	if !strings.Contains(text, "No users with READ-WRITE-SHARE access found") {
		t.Errorf("expected empty-users placeholder, got:\n%s", text)
	}
	if !strings.Contains(text, "- Principal Investigator: N/A") {
		t.Errorf("expected N/A PI, got:\n%s", text)
	}
}

func TestRender_UnspecifiedLevel(t *testing.T) {
	cfg := testConfig()
	cfg.SecurityLevel = ""

	text := render(t, cfg)

	if !strings.Contains(text, "- Data Sensitivity Level: Not specified") {
		t.Errorf("expected unspecified level note, got:\n%s", text)
	}
}
