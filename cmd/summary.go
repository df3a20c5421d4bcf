// =============================================================================
// Order Sheet - Summary Command
// =============================================================================
//
// This file defines the 'summary' command group: regenerating the two
// summary workbooks from the raw ledger and exporting the results.
//
// COMMAND USAGE:
//   ordersheet summary generate                # Regenerate and export
//   ordersheet summary generate --no-export    # Regenerate only
//
// GENERATION PIPELINE:
//   1. Read every well-formed row of the ledger workbook.
//   2. Aggregate per-product counts and amounts in one scan, producing the
//      all-rows variant and the variant excluding subtotal marker rows.
//   3. Write both summary workbooks (atomic per file).
//   4. Copy the net summary and the raw ledger into the export folder and
//      hand the paths to the share sink.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RAFIKME/ordersheet/internal/summary"
	"github.com/RAFIKME/ordersheet/pkg/export"
)

var noExport bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Regenerate the summary workbooks from the order ledger",
}

var summaryGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Recompute both summary workbooks and export them",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		entries, err := a.persister.Entries()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			a.notifier.Notify("ledger is empty; nothing to summarize")
			return nil
		}

		result := summary.Aggregate(entries, a.persister.Sentinel())
		_, netPath, err := a.summaryWriter().Write(result)
		if err != nil {
			return err
		}

		a.notifier.Notify(fmt.Sprintf("summaries regenerated from %d ledger rows", result.EntriesParsed))

		if noExport {
			return nil
		}

		exporter := export.NewExporter(a.cfg.ExportDir, a.log)
		copied, err := exporter.Copy(netPath, a.provider.Path(a.persister.File()))
		if err != nil {
			return err
		}

		sharer := export.ManifestSharer{Dir: exporter.Dir(), Log: a.log}
		if err := sharer.ShareFiles(copied, a.cfg.Share.Recipient); err != nil {
			return err
		}

		a.notifier.Notify("summary and ledger exported")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.AddCommand(summaryGenerateCmd)

	summaryGenerateCmd.Flags().BoolVar(&noExport, "no-export", false, "Skip the export/share step")
}
