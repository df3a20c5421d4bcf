// =============================================================================
// Order Sheet - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the shared wiring
// every subcommand builds on: configuration loading, the structured logger,
// the path provider and the workbook codec.
//
// COBRA CLI STRUCTURE:
//   ordersheet
//   ├── catalog (list / add / delete)
//   ├── order   (save / clear)
//   ├── summary (generate)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RAFIKME/ordersheet/internal/catalog"
	"github.com/RAFIKME/ordersheet/internal/config"
	"github.com/RAFIKME/ordersheet/internal/ledger"
	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/internal/summary"
	"github.com/RAFIKME/ordersheet/pkg/export"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

// cfgFile holds the path to the configuration file (--config).
var cfgFile string

// verbose enables debug logging (--verbose).
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ordersheet",
	Short: "Order Sheet - spreadsheet-backed retail catalog and order ledger",
	Long: `Order Sheet manages a small retail workflow whose database is a set of
spreadsheet workbooks: city, shop and product catalogs, an append-only order
ledger, and summary reports derived from it.

Example Usage:
  ordersheet catalog list products           # List the product catalog
  ordersheet order save --cart cart.yaml     # Append a confirmed cart to the ledger
  ordersheet summary generate                # Regenerate both summary workbooks`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED WIRING
// =============================================================================

// app bundles the components a subcommand needs. Every command constructs it
// after flag parsing so configuration and logging honor the global flags.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	provider  *paths.Provider
	codec     *sheet.Codec
	catalog   *catalog.Catalog
	persister *ledger.Persister
	notifier  export.Notifier
}

func newApp() (*app, error) {
	// .env is optional; environment overrides still apply without it.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg.LogLevel)
	provider := paths.NewProvider(cfg.DataDir)
	codec := sheet.NewCodec(log)

	cat := catalog.New(catalog.Files{
		Cities:   cfg.Files.Cities,
		Shops:    cfg.Files.Shops,
		Products: cfg.Files.Products,
	}, provider, codec, log)

	persister := ledger.NewPersister(ledger.Options{
		File:             cfg.Files.Ledger,
		SubtotalSentinel: cfg.Labels.SubtotalSentinel,
		TotalLabel:       cfg.Labels.Total,
		CurrencySuffix:   cfg.Currency.Suffix,
	}, provider, codec, log)

	return &app{
		cfg:       cfg,
		log:       log,
		provider:  provider,
		codec:     codec,
		catalog:   cat,
		persister: persister,
		notifier:  export.LogNotifier{Log: log},
	}, nil
}

// summaryWriter builds the writer for the two summary workbooks.
func (a *app) summaryWriter() *summary.Writer {
	return summary.NewWriter(summary.Options{
		AllRowsFile:    a.cfg.Files.SummaryAll,
		NetFile:        a.cfg.Files.SummaryNet,
		TotalLabel:     a.cfg.Labels.Total,
		CurrencySuffix: a.cfg.Currency.Suffix,
	}, a.provider, a.codec, a.log)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}
