// =============================================================================
// Order Sheet - Order Ledger
// =============================================================================
//
// The append-only order workbook ("Check.xlsx", sheet "Orders"). Confirmed
// carts are appended grouped by shop, each group followed by a subtotal
// marker row. The marker is the only structural signal in an otherwise flat
// row list: its shop-label cell carries a fixed sentinel string that the
// summary aggregator recognizes verbatim.
//
// ROW LAYOUT (header row 0):
//   | Shop Name | Product Name | Count (num) | Discounted Price | Total |
//
// A subtotal marker row has count 0 and the literal "1" in the discounted
// price column, with the shop's summed total in the last column. The price
// columns hold display-formatted strings; only the count is numeric.
//
// =============================================================================

package ledger

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/RAFIKME/ordersheet/internal/cart"
	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/pkg/money"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

// ErrLedgerWrite indicates an I/O failure while persisting the ledger. The
// in-memory cart is untouched so the user can retry.
var ErrLedgerWrite = errors.New("failed to persist order ledger")

// Default labels. The sentinel must match persisted rows verbatim, so
// changing it orphans the marker rows already in the ledger.
const (
	DefaultFile             = "Check.xlsx"
	DefaultSheet            = "Orders"
	DefaultSubtotalSentinel = "Խանութի ընդհանուր"
	DefaultTotalLabel       = "Ընդհանուր"
)

// Schema describes the ledger workbook.
var Schema = sheet.Schema{
	Sheet: DefaultSheet,
	Columns: []sheet.Column{
		{Name: "Shop Name", Kind: sheet.ColString},
		{Name: "Product Name", Kind: sheet.ColString},
		{Name: "Count", Kind: sheet.ColNumber},
		{Name: "Discounted Price", Kind: sheet.ColCurrency},
		{Name: "Total", Kind: sheet.ColCurrency},
	},
}

// Entry is one persisted ledger row, product line and subtotal marker alike.
type Entry struct {
	ShopLabel     string
	ProductName   string
	Count         int
	DiscountedStr string
	TotalStr      string
}

// Options configure a Persister.
type Options struct {
	File             string
	Sheet            string
	SubtotalSentinel string
	TotalLabel       string
	CurrencySuffix   string
}

func (o *Options) applyDefaults() {
	if o.File == "" {
		o.File = DefaultFile
	}
	if o.Sheet == "" {
		o.Sheet = DefaultSheet
	}
	if o.SubtotalSentinel == "" {
		o.SubtotalSentinel = DefaultSubtotalSentinel
	}
	if o.TotalLabel == "" {
		o.TotalLabel = DefaultTotalLabel
	}
	if o.CurrencySuffix == "" {
		o.CurrencySuffix = money.Suffix
	}
}

// Persister appends confirmed carts to the ledger workbook.
type Persister struct {
	opts     Options
	provider *paths.Provider
	codec    *sheet.Codec
	log      zerolog.Logger
}

// NewPersister creates a Persister over the ledger file.
func NewPersister(opts Options, provider *paths.Provider, codec *sheet.Codec, log zerolog.Logger) *Persister {
	opts.applyDefaults()
	return &Persister{
		opts:     opts,
		provider: provider,
		codec:    codec,
		log:      log.With().Str("file", opts.File).Logger(),
	}
}

// File returns the ledger workbook file name.
func (p *Persister) File() string {
	return p.opts.File
}

// Sentinel returns the subtotal marker label persisted rows carry.
func (p *Persister) Sentinel() string {
	return p.opts.SubtotalSentinel
}

// Append writes one row per cart line plus a subtotal marker per shop group,
// in the cart's shop insertion order. The whole workbook is rewritten through
// a temporary file, so the operation is all-or-nothing at the file level. The
// cart is not cleared here; clearing after success is the caller's job.
func (p *Persister) Append(c *cart.Ledger, shopLabel func(shopID int) string) error {
	unlock := p.provider.Lock(p.opts.File)
	defer unlock()

	path := p.provider.Path(p.opts.File)
	sheetName, rows, err := p.codec.ReadRaw(path)
	if errors.Is(err, sheet.ErrMissingFile) {
		sheetName = p.opts.Sheet
		rows = []sheet.Row{headerRow()}
	} else if err != nil {
		return err
	}
	if len(rows) == 0 {
		rows = []sheet.Row{headerRow()}
	}

	groups := c.LinesByShop()
	appended := 0
	for _, shopID := range c.ShopOrder() {
		label := shopLabel(shopID)
		shopTotal := decimal.Zero

		for _, line := range groups[shopID] {
			lineTotal := line.Total()
			rows = append(rows, sheet.Row{
				sheet.String(label),
				sheet.String(line.ProductName),
				sheet.Number(float64(line.Quantity)),
				sheet.String(money.FormatWith(line.DiscountedUnitPrice(), p.opts.CurrencySuffix)),
				sheet.String(money.FormatWith(lineTotal, p.opts.CurrencySuffix)),
			})
			shopTotal = shopTotal.Add(lineTotal)
			appended++
		}

		rows = append(rows, sheet.Row{
			sheet.String(p.opts.SubtotalSentinel),
			sheet.String(p.opts.TotalLabel),
			sheet.Number(0),
			sheet.String("1"),
			sheet.String(money.FormatWith(shopTotal, p.opts.CurrencySuffix)),
		})
	}

	if err := p.codec.WriteRaw(path, sheetName, rows); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	p.log.Info().
		Int("lines", appended).
		Int("shops", len(groups)).
		Msg("cart appended to ledger")
	return nil
}

// Clear rewrites the ledger keeping only its header row. A missing ledger is
// reported as sheet.ErrMissingFile.
func (p *Persister) Clear() error {
	unlock := p.provider.Lock(p.opts.File)
	defer unlock()

	path := p.provider.Path(p.opts.File)
	sheetName, rows, err := p.codec.ReadRaw(path)
	if err != nil {
		return err
	}

	header := headerRow()
	if len(rows) > 0 {
		header = rows[0]
	}
	if err := p.codec.WriteRaw(path, sheetName, []sheet.Row{header}); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	p.log.Info().Msg("ledger cleared")
	return nil
}

// Entries reads every well-formed ledger row. A missing ledger yields an
// empty slice.
func (p *Persister) Entries() ([]Entry, error) {
	schema := Schema
	schema.Sheet = p.opts.Sheet
	rows, err := p.codec.ReadRecords(p.provider.Path(p.opts.File), schema)
	if errors.Is(err, sheet.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ShopLabel:     row.At(0).Text(),
			ProductName:   row.At(1).Text(),
			Count:         int(row.At(2).Num),
			DiscountedStr: row.At(3).Text(),
			TotalStr:      row.At(4).Text(),
		})
	}
	return entries, nil
}

func headerRow() sheet.Row {
	return Schema.Header()
}
