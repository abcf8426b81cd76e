package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordnung/internal/config"
	"ordnung/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
directories:
  - /data/inbox
global_exclusions:
  file_patterns:
    - "*.lock"
  folder_patterns:
    - "*node_modules*"
global_duplicate_handling: RenameWithTimestamp
default_target_folder: Misc
file_rules:
  - extensions: ["PDF", ".TxT"]
    target_folder: Documents
    duplicate_handling: Overwrite
  - name_patterns: ["invoice_*"]
    target_folder: Money
    sub_folder: Invoices
    organize_by_date: true
folder_rules:
  - rename_pattern: "project*"
    new_name_template: "{JJJJ} {OriginalName}"
  - move_pattern: "old*"
    target_folder: Archive
`)

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/inbox"}, cfg.Directories)
	assert.Equal(t, types.DuplicateRenameWithTimestamp, cfg.GlobalDuplicateHandling)
	assert.Equal(t, "Misc", cfg.DefaultTargetFolder)

	require.Len(t, cfg.FileRules, 2)
	// Extensions are lower-cased and get a leading dot at load time.
	assert.Equal(t, []string{".pdf", ".txt"}, cfg.FileRules[0].Extensions)
	require.NotNil(t, cfg.FileRules[0].DuplicateHandling)
	assert.Equal(t, types.DuplicateOverwrite, *cfg.FileRules[0].DuplicateHandling)
	assert.Nil(t, cfg.FileRules[1].DuplicateHandling)
	assert.True(t, cfg.FileRules[1].OrganizeByDate)

	require.Len(t, cfg.FolderRules, 2)
	assert.Equal(t, "{JJJJ} {OriginalName}", cfg.FolderRules[0].NewNameTemplate)
	assert.Equal(t, "Archive", cfg.FolderRules[1].TargetFolder)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfigFile(writeConfig(t, "directories: [/data]\n"))
	require.NoError(t, err)

	assert.Equal(t, "Sonstiges", cfg.DefaultTargetFolder)
	assert.Equal(t, types.DuplicateSkip, cfg.GlobalDuplicateHandling)
	assert.Equal(t, 5, cfg.Watch.DebounceSeconds)
}

func TestUnknownStrategyDegradesToSkip(t *testing.T) {
	cfg, err := config.LoadConfigFile(writeConfig(t, "global_duplicate_handling: explode\n"))
	require.NoError(t, err)
	assert.Equal(t, types.DuplicateSkip, cfg.GlobalDuplicateHandling)
}

func TestStrategySpellings(t *testing.T) {
	for _, raw := range []string{"Skip", "SKIP", "skip"} {
		s, ok := types.ParseDuplicateStrategy(raw)
		assert.True(t, ok)
		assert.Equal(t, types.DuplicateSkip, s)
	}
	for _, raw := range []string{"RenameWithTimestamp", "rename_with_timestamp", "rename-with-timestamp"} {
		s, ok := types.ParseDuplicateStrategy(raw)
		assert.True(t, ok)
		assert.Equal(t, types.DuplicateRenameWithTimestamp, s)
	}
}

func TestMissingConfigIsFatal(t *testing.T) {
	_, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMalformedConfigIsFatal(t *testing.T) {
	_, err := config.LoadConfigFile(writeConfig(t, "file_rules: {not: [a, list"))
	assert.Error(t, err)
}

func TestInvalidDebounceRejected(t *testing.T) {
	_, err := config.LoadConfigFile(writeConfig(t, "watch:\n  debounce_seconds: -1\n"))
	assert.Error(t, err)
}
