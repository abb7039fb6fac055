package testutil

import (
	"testing"
)

func TestLoadValidStudyConfig(t *testing.T) {
	cfg, err := ValidStudyConfig()
	if err != nil {
		t.Fatalf("ValidStudyConfig() error: %v", err)
	}

	if cfg.AccessionCode != "CXRS001" {
		t.Errorf("AccessionCode = %q, want %q", cfg.AccessionCode, "CXRS001")
	}
	if cfg.PrincipalInvestigator == nil || cfg.PrincipalInvestigator.Email == "" {
		t.Error("PrincipalInvestigator should be set with an email")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid config should pass validation: %v", err)
	}
}

func TestLoadInvalidStudyConfig(t *testing.T) {
	cfg, err := InvalidStudyConfig()
	if err != nil {
		t.Fatalf("InvalidStudyConfig() error: %v", err)
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Invalid config should fail validation")
	}
}

func TestLoadCustomStructure(t *testing.T) {
	structure, err := CustomStructure()
	if err != nil {
		t.Fatalf("CustomStructure() error: %v", err)
	}

	if len(structure) != 3 {
		t.Errorf("len(structure) = %d, want 3", len(structure))
	}
	raw, ok := structure["raw"]
	if !ok || len(raw.Nested) != 2 {
		t.Errorf("raw entry should nest two subfolders, got %+v", raw)
	}
	processed, ok := structure["processed"]
	if !ok || len(processed.Children) != 2 {
		t.Errorf("processed entry should list two children, got %+v", processed)
	}
}
