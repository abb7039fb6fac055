// Package study implements study folder provisioning: canonical name
// derivation, directory materialization, and the creation pipeline.
//
// Creation is strictly additive. Existing directories and their contents are
// never removed or modified; a second run against the same target only fills
// in what is missing.
package study

import (
	"fmt"
	"strings"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/errors"
)

// Names holds the folder names derived from a study configuration.
type Names struct {
	Workpackage        string
	InvestigationLabel string
	StudyLabel         string
	Slug               string

	// InvestigationFolder is "i_{workpackage}_{investigation_label}".
	InvestigationFolder string

	// StudyFolder is "s_{workpackage}-{investigation_label}-{study_label}_{slug}"
	// unless an override folder name was supplied, which is used verbatim.
	StudyFolder string

	// Override reports whether StudyFolder came from an explicit override.
	Override bool
}

// DeriveNames computes the canonical folder names for a study. It is a pure
// function of the config and fails before any filesystem mutation when a
// field needed for derivation is empty.
func DeriveNames(cfg *config.StudyConfig) (Names, error) {
	n := Names{
		Workpackage:        strings.TrimSpace(cfg.InvestigationWorkPackage),
		InvestigationLabel: strings.TrimSpace(cfg.InvestigationAccessionCode),
		StudyLabel:         strings.TrimSpace(cfg.AccessionCode),
		Slug:               strings.TrimSpace(cfg.Slug),
	}

	switch {
	case n.Workpackage == "":
		return Names{}, errors.MissingField("investigation_work_package")
	case n.InvestigationLabel == "":
		return Names{}, errors.MissingField("investigation_accession_code")
	case n.StudyLabel == "":
		return Names{}, errors.MissingField("accession_code")
	case n.Slug == "":
		return Names{}, errors.MissingField("slug")
	}

	n.InvestigationFolder = fmt.Sprintf("i_%s_%s", n.Workpackage, n.InvestigationLabel)

	if override := strings.TrimSpace(cfg.FolderName); override != "" {
		n.StudyFolder = override
		n.Override = true
	} else {
		n.StudyFolder = fmt.Sprintf("s_%s-%s-%s_%s", n.Workpackage, n.InvestigationLabel, n.StudyLabel, n.Slug)
	}

	return n, nil
}

// CategoryFolder returns the labeled name for a top-level data category
// folder, e.g. "CXRP001-CXRS001_raw". Folders below the top level keep
// their raw names.
func (n Names) CategoryFolder(category string) string {
	return fmt.Sprintf("%s-%s_%s", n.InvestigationLabel, n.StudyLabel, category)
}
