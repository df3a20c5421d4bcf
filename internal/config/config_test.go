package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAFIKME/ordersheet/internal/ledger"
	"github.com/RAFIKME/ordersheet/internal/summary"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "Out"), cfg.ExportDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Cities.xlsx", cfg.Files.Cities)
	assert.Equal(t, ledger.DefaultFile, cfg.Files.Ledger)
	assert.Equal(t, summary.DefaultAllRowsFile, cfg.Files.SummaryAll)
	assert.Equal(t, summary.DefaultNetFile, cfg.Files.SummaryNet)
	assert.Equal(t, ledger.DefaultSubtotalSentinel, cfg.Labels.SubtotalSentinel)
	assert.Equal(t, "AMD", cfg.Currency.Suffix)
}

func TestLoadReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /tmp/sheets
log_level: debug
files:
  ledger: Orders.xlsx
currency:
  suffix: USD
share:
  recipient: owner@example.com
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/sheets", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/sheets", "Out"), cfg.ExportDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Orders.xlsx", cfg.Files.Ledger)
	assert.Equal(t, "USD", cfg.Currency.Suffix)
	assert.Equal(t, "owner@example.com", cfg.Share.Recipient)

	// Untouched fields still get defaults.
	assert.Equal(t, "Products.xlsx", cfg.Files.Products)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /tmp/from-yaml\n"), 0o644))

	t.Setenv("ORDERSHEET_DATA_DIR", "/tmp/from-env")
	t.Setenv("ORDERSHEET_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env", cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
