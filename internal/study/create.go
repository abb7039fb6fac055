package study

import (
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/errors"
	"github.com/cropxr/drivectl/internal/logging"
)

// Options configures a study folder creation run.
type Options struct {
	// TargetPath is the base directory the tree is created under. It must
	// already exist.
	TargetPath string

	// CreateInvestigationFolder nests the study folder inside the derived
	// investigation folder.
	CreateInvestigationFolder bool

	// Structure overrides the default {raw, processed, metadata} layout.
	Structure Structure
}

// Result reports what a creation run produced.
type Result struct {
	Names Names

	// StudyPath is the absolute path of the study folder.
	StudyPath string

	// InvestigationPath is set when the investigation folder level was
	// requested.
	InvestigationPath string

	// Created lists the directories created by this run, in creation order.
	// Directories that already existed are not listed.
	Created []string
}

// Create validates the config, derives folder names, and materializes the
// directory tree. It never deletes or modifies existing directories; on
// failure, directories created earlier in the run are left in place.
func Create(cfg *config.StudyConfig, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	names, err := DeriveNames(cfg)
	if err != nil {
		return nil, err
	}

	target := opts.TargetPath
	if target == "" {
		target = "."
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, errors.Filesystem(target, fmt.Errorf("target directory does not exist"))
	}
	if !info.IsDir() {
		return nil, errors.Filesystem(target, fmt.Errorf("target is not a directory"))
	}

	result := &Result{Names: names}

	base := target
	if opts.CreateInvestigationFolder {
		invPath, err := ensureDir(result, target, names.InvestigationFolder)
		if err != nil {
			return result, err
		}
		result.InvestigationPath = invPath
		base = invPath
	}

	studyPath, err := ensureDir(result, base, names.StudyFolder)
	if err != nil {
		return result, err
	}
	result.StudyPath = studyPath

	structure := opts.Structure
	if structure == nil {
		structure = DefaultStructure()
	}

	for _, category := range structure.SortedKeys() {
		folder, err := ensureDir(result, studyPath, names.CategoryFolder(category))
		if err != nil {
			return result, err
		}
		if err := createSubfolders(result, folder, structure[category]); err != nil {
			return result, err
		}
	}

	return result, nil
}

// createSubfolders walks a structure node below the top level, creating one
// directory per entry. Names below the top level are used unprefixed.
func createSubfolders(result *Result, parent string, node *Node) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case KindLeaf:
		return nil
	case KindList:
		for _, name := range node.Children {
			if _, err := ensureDir(result, parent, name); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		for _, name := range sortedNestedKeys(node.Nested) {
			folder, err := ensureDir(result, parent, name)
			if err != nil {
				return err
			}
			if err := createSubfolders(result, folder, node.Nested[name]); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.ValidationError(fmt.Sprintf("unknown structure node kind %d", node.Kind))
	}
}

// ensureDir creates parent/name if missing and records it in the result.
// The join is confined to parent so structure files cannot escape the
// target tree. Pre-existing directories are left untouched.
func ensureDir(result *Result, parent, name string) (string, error) {
	path, err := securejoin.SecureJoin(parent, name)
	if err != nil {
		return "", errors.Filesystem(filepath.Join(parent, name), err)
	}

	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return "", errors.Filesystem(path, fmt.Errorf("a file already exists where a directory is needed"))
		}
		logging.Debug("directory already exists", "path", path)
		return path, nil
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return "", errors.Filesystem(path, err)
	}

	logging.Debug("created directory", "path", path)
	result.Created = append(result.Created, path)
	return path, nil
}
