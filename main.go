// =============================================================================
// Order Sheet - Main Entry Point
// =============================================================================
//
// Order Sheet is a CLI tool for a small retail ordering workflow backed by
// spreadsheet workbooks: catalog maintenance, an append-only order ledger,
// and derived summary reports.
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : core engine (codec, catalog, cart, ledger, summary)
//   - pkg/       : shared utilities (money, paths, export)
//
// =============================================================================

package main

import (
	"github.com/RAFIKME/ordersheet/cmd"
)

func main() {
	cmd.Execute()
}
