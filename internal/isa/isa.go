// Package isa creates directory trees for ISA (Investigation, Study, Assay)
// model projects from a YAML structure file, with label interpolation,
// per-directory README files, and a generated project README.
package isa

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"gopkg.in/yaml.v3"

	"github.com/cropxr/drivectl/internal/errors"
	"github.com/cropxr/drivectl/internal/logging"
)

// readmeKey marks a directory's README content inside a mapping.
const readmeKey = "_readme"

// now is stubbed in tests.
var now = time.Now

// Labels are interpolated into the structure file before parsing.
type Labels struct {
	Investigation string
	Study         string
	Assay         string
}

// Interpolate substitutes label variables in the raw structure content.
// Plain variables carry the label text; the *_SLUG variables carry the
// connected identifiers used for folder names.
func Interpolate(content string, labels Labels) string {
	replacer := strings.NewReplacer(
		"${INVESTIGATION_LABEL}", labels.Investigation,
		"${STUDY_LABEL}", labels.Study,
		"${ASSAY_LABEL}", labels.Assay,
		"INVESTIGATION_LABEL_SLUG", "i_"+labels.Investigation,
		"STUDY_LABEL_SLUG", "s_"+labels.Investigation+labels.Study,
		"ASSAY_LABEL_SLUG", "a_"+labels.Investigation+labels.Study+labels.Assay,
	)
	return replacer.Replace(content)
}

// Parse interpolates labels into the YAML content and decodes the structure.
func Parse(data []byte, labels Labels) (map[string]any, error) {
	content := Interpolate(string(data), labels)

	var structure map[string]any
	if err := yaml.Unmarshal([]byte(content), &structure); err != nil {
		return nil, err
	}
	if len(structure) == 0 {
		return nil, fmt.Errorf("structure defines no entries")
	}
	return structure, nil
}

// Result reports what a run produced.
type Result struct {
	TargetPath  string
	ReadmePath  string
	CreatedDirs []string
	Files       []string
}

// Run loads the structure file, materializes the tree under targetPath, and
// writes the project README. Creation is additive; existing directories and
// files are left untouched.
func Run(structureFile, targetPath string, labels Labels) (*Result, error) {
	data, err := os.ReadFile(structureFile)
	if err != nil {
		return nil, errors.ConfigParse(structureFile, err)
	}

	structure, err := Parse(data, labels)
	if err != nil {
		return nil, errors.ConfigParse(structureFile, err)
	}

	result := &Result{TargetPath: targetPath}
	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return nil, errors.Filesystem(targetPath, err)
	}

	if err := create(result, targetPath, structure); err != nil {
		return result, err
	}

	readmePath, err := writeProjectReadme(targetPath, labels, structure)
	if err != nil {
		return result, err
	}
	result.ReadmePath = readmePath

	return result, nil
}

// create walks the structure recursively under parent.
//
// Entry shapes:
//   - mapping: a directory; a "_readme" string entry becomes its README.md
//   - string with a dot in the key: a file with that content
//   - string otherwise: a directory whose README.md carries the content
//   - null: an empty directory
func create(result *Result, parent string, structure map[string]any) error {
	for _, key := range sortedKeys(structure) {
		if key == readmeKey {
			continue
		}

		path, err := securejoin.SecureJoin(parent, key)
		if err != nil {
			return errors.Filesystem(filepath.Join(parent, key), err)
		}

		switch value := structure[key].(type) {
		case map[string]any:
			if err := ensureDir(result, path); err != nil {
				return err
			}
			if readme, ok := value[readmeKey].(string); ok {
				if err := writeFileIfAbsent(result, filepath.Join(path, "README.md"), readme); err != nil {
					return err
				}
			}
			if err := create(result, path, value); err != nil {
				return err
			}
		case string:
			if strings.Contains(key, ".") {
				if err := writeFileIfAbsent(result, path, value); err != nil {
					return err
				}
			} else {
				if err := ensureDir(result, path); err != nil {
					return err
				}
				if err := writeFileIfAbsent(result, filepath.Join(path, "README.md"), value); err != nil {
					return err
				}
			}
		case nil:
			if err := ensureDir(result, path); err != nil {
				return err
			}
		default:
			return errors.ConfigParse(key, fmt.Errorf("entry must be a mapping, string, or null (got %T)", value))
		}
	}
	return nil
}

func ensureDir(result *Result, path string) error {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return errors.Filesystem(path, fmt.Errorf("a file already exists where a directory is needed"))
		}
		logging.Debug("directory already exists", "path", path)
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Filesystem(path, err)
	}
	result.CreatedDirs = append(result.CreatedDirs, path)
	return nil
}

// writeFileIfAbsent writes content to path unless the file already exists.
func writeFileIfAbsent(result *Result, path, content string) error {
	if _, err := os.Stat(path); err == nil {
		logging.Debug("file already exists, keeping", "path", path)
		return nil
	}
	if !strings.HasSuffix(content, "\n") && content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Filesystem(path, err)
	}
	result.Files = append(result.Files, path)
	return nil
}

// writeProjectReadme writes the top-level README summarizing the structure.
// An existing README is preserved.
func writeProjectReadme(targetPath string, labels Labels, structure map[string]any) (string, error) {
	path := filepath.Join(targetPath, "README.md")
	if _, err := os.Stat(path); err == nil {
		logging.Debug("project README already exists, keeping", "path", path)
		return path, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", labels.Investigation)
	fmt.Fprintf(&b, "ISA model project generated on %s.\n\n", now().Format("2006-01-02"))
	fmt.Fprintf(&b, "## Investigation\n\n%s\n\n", labels.Investigation)
	fmt.Fprintf(&b, "## Study\n\n%s\n\n", labels.Study)
	fmt.Fprintf(&b, "## Assay\n\n%s\n\n", labels.Assay)
	b.WriteString("## Structure Overview\n\n")
	b.WriteString(Overview(structure, 0))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", errors.Filesystem(path, err)
	}
	return path, nil
}

// Overview renders a nested markdown list describing the structure.
func Overview(structure map[string]any, level int) string {
	var b strings.Builder
	indent := strings.Repeat("  ", level)

	for _, key := range sortedKeys(structure) {
		if key == readmeKey {
			continue
		}

		fmt.Fprintf(&b, "%s- `%s`", indent, key)

		switch value := structure[key].(type) {
		case map[string]any:
			b.WriteString(" - Directory")
			if _, ok := value[readmeKey]; ok {
				b.WriteString(" with README")
			}
			b.WriteString("\n")
			b.WriteString(Overview(value, level+1))
		case string:
			if strings.Contains(key, ".") {
				b.WriteString(" - File\n")
			} else {
				b.WriteString(" - Directory with README\n")
			}
		default:
			b.WriteString("\n")
		}
	}

	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
