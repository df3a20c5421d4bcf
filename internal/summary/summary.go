// =============================================================================
// Order Sheet - Summary Aggregator
// =============================================================================
//
// Regenerates the derived summary workbooks from the raw order ledger. The
// whole ledger is reread on every run, so the summaries are a pure function
// of the ledger content and regeneration is idempotent.
//
// Two variants are produced in one scan:
//   - all rows: every ledger row, subtotal markers included
//   - net:      rows whose shop label equals the subtotal sentinel are skipped
//
// The persisted total is a display-formatted string, so the amount has to be
// re-parsed from it (strip non-digits). That is lossy by format design; the
// count column is numeric and read directly.
//
// =============================================================================

package summary

import (
	"github.com/shopspring/decimal"

	"github.com/RAFIKME/ordersheet/internal/ledger"
	"github.com/RAFIKME/ordersheet/pkg/money"
)

// Row is one aggregated product line.
type Row struct {
	Product string
	Count   int
	Total   decimal.Decimal
}

// Result holds both summary variants, each in first-seen product order, plus
// their grand totals.
type Result struct {
	AllRows       []Row
	Net           []Row
	AllRowsTotal  decimal.Decimal
	NetTotal      decimal.Decimal
	EntriesParsed int
}

// Aggregate folds the ledger entries into per-product count and amount
// totals. Entries whose stored total does not parse are skipped, matching
// the row-skip policy everywhere else.
func Aggregate(entries []ledger.Entry, subtotalSentinel string) Result {
	all := newAccumulator()
	net := newAccumulator()
	parsed := 0

	for _, e := range entries {
		amount, ok := money.Parse(e.TotalStr)
		if !ok {
			continue
		}
		parsed++

		all.add(e.ProductName, e.Count, amount)
		if e.ShopLabel != subtotalSentinel {
			net.add(e.ProductName, e.Count, amount)
		}
	}

	return Result{
		AllRows:       all.rows,
		Net:           net.rows,
		AllRowsTotal:  all.total,
		NetTotal:      net.total,
		EntriesParsed: parsed,
	}
}

// accumulator keys rows by product name, preserving first-seen order.
type accumulator struct {
	index map[string]int
	rows  []Row
	total decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int), total: decimal.Zero}
}

func (a *accumulator) add(product string, count int, amount decimal.Decimal) {
	i, ok := a.index[product]
	if !ok {
		i = len(a.rows)
		a.index[product] = i
		a.rows = append(a.rows, Row{Product: product, Total: decimal.Zero})
	}
	a.rows[i].Count += count
	a.rows[i].Total = a.rows[i].Total.Add(amount)
	a.total = a.total.Add(amount)
}
