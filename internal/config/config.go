// =============================================================================
// Order Sheet - Configuration Module
// =============================================================================
//
// Configuration is resolved in three layers, later layers winning:
//   1. Built-in defaults (the historical file names and labels).
//   2. The YAML config file (--config flag, default config.yaml).
//   3. ORDERSHEET_* environment variables, with .env support.
//
// A missing YAML file is not an error; the tool runs on defaults and
// environment alone. The resolved configuration is validated before use.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/RAFIKME/ordersheet/internal/ledger"
	"github.com/RAFIKME/ordersheet/internal/summary"
	"github.com/RAFIKME/ordersheet/pkg/money"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "ORDERSHEET"

// Config is the resolved application configuration.
type Config struct {
	// DataDir is where the catalog and ledger workbooks live.
	// Default: ~/Documents/Boyarskoe (override: ORDERSHEET_DATA_DIR).
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`

	// ExportDir receives the exported summary and ledger copies.
	// Default: <data_dir>/Out.
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR" validate:"required"`

	// LogLevel controls verbosity: debug, info, warn or error.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	Files    FilesConfig    `yaml:"files"`
	Labels   LabelsConfig   `yaml:"labels"`
	Currency CurrencyConfig `yaml:"currency"`
	Share    ShareConfig    `yaml:"share"`
}

// FilesConfig names the workbooks.
type FilesConfig struct {
	Cities     string `yaml:"cities" validate:"required"`
	Shops      string `yaml:"shops" validate:"required"`
	Products   string `yaml:"products" validate:"required"`
	Ledger     string `yaml:"ledger" validate:"required"`
	SummaryAll string `yaml:"summary_all" validate:"required"`
	SummaryNet string `yaml:"summary_net" validate:"required"`
}

// LabelsConfig holds the sentinel strings written into the ledger. The
// subtotal sentinel must stay stable across runs: the aggregator recognizes
// it verbatim in previously persisted rows.
type LabelsConfig struct {
	SubtotalSentinel string `yaml:"subtotal_sentinel" validate:"required"`
	Total            string `yaml:"total" validate:"required"`
}

// CurrencyConfig controls price display formatting.
type CurrencyConfig struct {
	Suffix string `yaml:"suffix" validate:"required"`
}

// ShareConfig configures the export share sink.
type ShareConfig struct {
	Recipient string `yaml:"recipient" envconfig:"SHARE_RECIPIENT"`
}

// Load reads the YAML file (when present), applies defaults, overlays
// environment variables and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults and environment only.
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = paths.DefaultDataDir()
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = filepath.Join(cfg.DataDir, "Out")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Files.Cities == "" {
		cfg.Files.Cities = "Cities.xlsx"
	}
	if cfg.Files.Shops == "" {
		cfg.Files.Shops = "Shops.xlsx"
	}
	if cfg.Files.Products == "" {
		cfg.Files.Products = "Products.xlsx"
	}
	if cfg.Files.Ledger == "" {
		cfg.Files.Ledger = ledger.DefaultFile
	}
	if cfg.Files.SummaryAll == "" {
		cfg.Files.SummaryAll = summary.DefaultAllRowsFile
	}
	if cfg.Files.SummaryNet == "" {
		cfg.Files.SummaryNet = summary.DefaultNetFile
	}
	if cfg.Labels.SubtotalSentinel == "" {
		cfg.Labels.SubtotalSentinel = ledger.DefaultSubtotalSentinel
	}
	if cfg.Labels.Total == "" {
		cfg.Labels.Total = ledger.DefaultTotalLabel
	}
	if cfg.Currency.Suffix == "" {
		cfg.Currency.Suffix = money.Suffix
	}
}
