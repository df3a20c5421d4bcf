// =============================================================================
// Order Sheet - Summary Workbooks
// =============================================================================
//
// Writes the two summary workbooks produced by Aggregate. Both share the
// layout [Product Name | Count | Total] with a trailing grand-total row.
// Product totals are written numerically; the grand-total cell is numeric in
// the all-rows workbook and a display-formatted string in the net workbook,
// which is the shape the downstream consumers have always received.
//
// =============================================================================

package summary

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/pkg/money"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

// Default file and sheet names.
const (
	DefaultAllRowsFile = "Summary.xlsx"
	DefaultNetFile     = "Check1.xlsx"
	DefaultSheet       = "Summary"
)

// Schema describes a summary workbook. Total is declared as currency because
// the grand-total cell may hold a formatted string.
var Schema = sheet.Schema{
	Sheet: DefaultSheet,
	Columns: []sheet.Column{
		{Name: "Product Name", Kind: sheet.ColString},
		{Name: "Count", Kind: sheet.ColNumber},
		{Name: "Total", Kind: sheet.ColCurrency},
	},
}

// Options configure a Writer.
type Options struct {
	AllRowsFile    string
	NetFile        string
	Sheet          string
	TotalLabel     string
	CurrencySuffix string
}

func (o *Options) applyDefaults() {
	if o.AllRowsFile == "" {
		o.AllRowsFile = DefaultAllRowsFile
	}
	if o.NetFile == "" {
		o.NetFile = DefaultNetFile
	}
	if o.Sheet == "" {
		o.Sheet = DefaultSheet
	}
	if o.TotalLabel == "" {
		o.TotalLabel = "Ընդհանուր"
	}
	if o.CurrencySuffix == "" {
		o.CurrencySuffix = money.Suffix
	}
}

// Writer persists aggregation results as workbooks.
type Writer struct {
	opts     Options
	provider *paths.Provider
	codec    *sheet.Codec
	log      zerolog.Logger
}

// NewWriter creates a Writer.
func NewWriter(opts Options, provider *paths.Provider, codec *sheet.Codec, log zerolog.Logger) *Writer {
	opts.applyDefaults()
	return &Writer{opts: opts, provider: provider, codec: codec, log: log}
}

// Files returns the two output file names: all-rows first, net second.
func (w *Writer) Files() (string, string) {
	return w.opts.AllRowsFile, w.opts.NetFile
}

// Write regenerates both summary workbooks from the result and returns their
// absolute paths (all-rows first, net second).
func (w *Writer) Write(res Result) (string, string, error) {
	allPath := w.provider.Path(w.opts.AllRowsFile)
	netPath := w.provider.Path(w.opts.NetFile)

	if err := w.writeOne(w.opts.AllRowsFile, res.AllRows, grandTotalCell(res.AllRowsTotal, false, w.opts.CurrencySuffix)); err != nil {
		return "", "", err
	}
	if err := w.writeOne(w.opts.NetFile, res.Net, grandTotalCell(res.NetTotal, true, w.opts.CurrencySuffix)); err != nil {
		return "", "", err
	}

	w.log.Info().
		Str("all_rows", w.opts.AllRowsFile).
		Str("net", w.opts.NetFile).
		Int("products", len(res.AllRows)).
		Msg("summaries regenerated")
	return allPath, netPath, nil
}

func (w *Writer) writeOne(file string, rows []Row, totalCell sheet.Cell) error {
	unlock := w.provider.Lock(file)
	defer unlock()

	schema := Schema
	schema.Sheet = w.opts.Sheet

	out := make([]sheet.Row, 0, len(rows)+1)
	for _, r := range rows {
		total, _ := r.Total.Float64()
		out = append(out, sheet.Row{
			sheet.String(r.Product),
			sheet.Number(float64(r.Count)),
			sheet.Number(total),
		})
	}
	out = append(out, sheet.Row{
		sheet.String(w.opts.TotalLabel),
		sheet.Blank(),
		totalCell,
	})

	return w.codec.WriteRecords(w.provider.Path(file), schema, out)
}

func grandTotalCell(total decimal.Decimal, formatted bool, suffix string) sheet.Cell {
	if formatted {
		return sheet.String(money.FormatWith(total, suffix))
	}
	n, _ := total.Float64()
	return sheet.Number(n)
}
