// Package testutil provides test fixtures and utilities.
//
// This package contains embedded JSON fixtures and helper functions for
// loading valid and invalid study configurations in unit tests.
//
// # Fixtures
//
// JSON fixtures are embedded using go:embed:
//
//	fixtures/valid_study_config.json
//	fixtures/invalid_study_config.json
//	fixtures/custom_structure.json
//
// # Loading Fixtures
//
// Helper functions load and parse fixtures into typed objects:
//
//	cfg, err := testutil.ValidStudyConfig()
//	cfg, err := testutil.InvalidStudyConfig()
//	structure, err := testutil.CustomStructure()
//
// For custom parsing or edge cases, load the raw bytes:
//
//	data, err := testutil.LoadFixture("valid_study_config.json")
//
// # Test Environment
//
// NewTestEnv builds a temporary drive layout (target, state, and SSH
// directories) and installs a system.MockExecutor as the process default,
// restoring the original on cleanup:
//
//	env := testutil.NewTestEnv(t)
//	path := env.WriteStudyConfig("study.json", cfg)
package testutil
