// Package testutil provides test fixtures and environment helpers
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cropxr/drivectl/internal/config"
	"github.com/cropxr/drivectl/internal/system"
)

// TestEnv holds a temporary drive layout plus a mock command executor
// installed as the process default.
type TestEnv struct {
	T         *testing.T
	TmpDir    string
	TargetDir string
	StateDir  string
	SSHDir    string
	Executor  *system.MockExecutor
}

// NewTestEnv creates a test environment with a mock executor. The original
// default executor is restored on test cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	env := &TestEnv{
		T:         t,
		TmpDir:    tmpDir,
		TargetDir: filepath.Join(tmpDir, "drive"),
		StateDir:  filepath.Join(tmpDir, "state"),
		SSHDir:    filepath.Join(tmpDir, "ssh"),
		Executor:  system.NewMockExecutor(),
	}

	for _, dir := range []string{env.TargetDir, env.StateDir, env.SSHDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	system.SetDefaultExecutor(env.Executor)
	t.Cleanup(system.ResetDefaults)

	return env
}

// WriteStudyConfig writes a study config as JSON into the environment and
// returns its path.
func (e *TestEnv) WriteStudyConfig(name string, cfg *config.StudyConfig) string {
	e.T.Helper()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		e.T.Fatalf("Failed to marshal study config: %v", err)
	}

	path := filepath.Join(e.TmpDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.T.Fatalf("Failed to write study config: %v", err)
	}
	return path
}

// WriteFile writes raw content into the environment and returns its path.
func (e *TestEnv) WriteFile(name, content string) string {
	e.T.Helper()

	path := filepath.Join(e.TmpDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// StudyDir returns the path of a study folder under the target directory.
func (e *TestEnv) StudyDir(folder string) string {
	return filepath.Join(e.TargetDir, folder)
}
