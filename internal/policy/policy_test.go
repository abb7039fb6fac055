package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/study"
)

func testConfig() *config.StudyConfig {
	return &config.StudyConfig{
		AccessionCode:              "CXRS001",
		SecurityLevel:              "CONFIDENTIAL",
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

func testNames(t *testing.T, cfg *config.StudyConfig) study.Names {
	t.Helper()
	names, err := study.DeriveNames(cfg)
	require.NoError(t, err)
	return names
}

func TestRender(t *testing.T) {
	cfg := testConfig()
	content, err := Render(cfg, testNames(t, cfg), "dataxr@cropxr.org")
	require.NoError(t, err)

	assert.Contains(t, content, "# FOLDER POLICY")
	assert.Contains(t, content, "**Study Title**: Plant Stress Response Analysis")
	assert.Contains(t, content, "**Current Sensitivity Level**: CONFIDENTIAL")
	assert.Contains(t, content, "| Jane Doe (jane.doe@example.org) | Principal Investigator | READ-WRITE-SHARE | PERMANENT |")
	assert.Contains(t, content, "| John Smith (john.smith@example.org) | Dataset Administrator | READ-WRITE-SHARE | PERMANENT |")
	assert.Contains(t, content, "**CXRP001-CXRS001_raw**")
	assert.Contains(t, content, "Data Engineering Team: dataxr@cropxr.org")
}

func TestRender_UnspecifiedLevel(t *testing.T) {
	cfg := testConfig()
	cfg.SecurityLevel = ""

	content, err := Render(cfg, testNames(t, cfg), "dataxr@cropxr.org")
	require.NoError(t, err)

	assert.Contains(t, content, "**Current Sensitivity Level**: [SELECT ONE: PUBLIC / INTERNAL / CONFIDENTIAL / RESTRICTED]")
}

func TestRender_NoPersons(t *testing.T) {
	cfg := testConfig()
	cfg.PrincipalInvestigator = nil
	cfg.DatasetAdministrator = nil

	content, err := Render(cfg, testNames(t, cfg), "dataxr@cropxr.org")
	require.NoError(t, err)

	assert.Contains(t, content, "| [Name] | [Role] |")
	assert.Contains(t, content, "**Project Lead**: [Name]")
}

func TestWrite_Creates(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testConfig()

	result, err := Write(tmpDir, cfg, testNames(t, cfg), "dataxr@cropxr.org", false)
	require.NoError(t, err)

	assert.Equal(t, StatusCreated, result.Status)
	assert.FileExists(t, filepath.Join(tmpDir, FileName))
	assert.Empty(t, result.BackupPath)
}

func TestWrite_SkipsWithoutOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testConfig()
	names := testNames(t, cfg)

	path := filepath.Join(tmpDir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("hand-edited policy"), 0644))

	result, err := Write(tmpDir, cfg, names, "dataxr@cropxr.org", false)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hand-edited policy", string(data), "existing content is authoritative")
}

func TestWrite_OverwriteBacksUp(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := testConfig()
	names := testNames(t, cfg)

	path := filepath.Join(tmpDir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("prior version"), 0644))

	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	result, err := Write(tmpDir, cfg, names, "dataxr@cropxr.org", true)
	require.NoError(t, err)

	assert.Equal(t, StatusOverwritten, result.Status)
	assert.Equal(t, path+".bak.20260314_092653", result.BackupPath)

	backup, err := os.ReadFile(result.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "prior version", string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(current), "# FOLDER POLICY"))
	assert.NotEqual(t, "prior version", string(current))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "created", StatusCreated.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "overwritten", StatusOverwritten.String())
}
