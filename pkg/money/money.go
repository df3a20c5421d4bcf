// =============================================================================
// Order Sheet - Money Formatting
// =============================================================================
//
// This package handles the conversion between internal decimal amounts and the
// display strings stored in the ledger workbook ("200 AMD" style). Internal
// math keeps full precision; only the rendered string is truncated to whole
// currency units.
//
// The parse side deliberately mirrors the lossy re-parse the ledger format
// forces on the aggregator: every non-digit character is stripped before the
// value is interpreted, so "1,250 AMD" and "1250AMD" both come back as 1250.
//
// =============================================================================

package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Suffix is the default currency suffix appended to formatted prices.
const Suffix = "AMD"

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Format renders an amount as a display string, truncating to whole currency
// units. The fractional part is dropped, not rounded.
func Format(amount decimal.Decimal) string {
	return FormatWith(amount, Suffix)
}

// FormatWith renders an amount with a specific currency suffix.
func FormatWith(amount decimal.Decimal, suffix string) string {
	return fmt.Sprintf("%s %s", amount.Truncate(0).String(), suffix)
}

// Parse recovers a numeric amount from a display-formatted string by stripping
// every non-digit character. It returns false when nothing numeric remains,
// so callers can skip the value the way malformed rows are skipped.
func Parse(formatted string) (decimal.Decimal, bool) {
	digits := nonDigits.ReplaceAllString(formatted, "")
	if digits == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Discounted applies a percentage discount to a unit price and keeps full
// precision: unitPrice * (1 - discountPercent/100).
func Discounted(unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return unitPrice.Mul(hundred.Sub(discountPercent)).Div(hundred)
}
