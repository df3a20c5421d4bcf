// =============================================================================
// Order Sheet - Cart Ledger
// =============================================================================
//
// The in-memory collection of cart lines built up before an order is
// confirmed. Nothing here touches a file: the cart is handed to the order
// persister on confirmation and cleared by the caller only after a
// successful persist, so a failed write never loses the user's cart.
//
// All monetary computation stays in full-precision decimals; truncation to
// whole currency units happens only when a value is rendered for display or
// for the ledger workbook. Keeping one rounding rule avoids drift between
// running totals and persisted rows.
//
// =============================================================================

package cart

import (
	"github.com/shopspring/decimal"

	"github.com/RAFIKME/ordersheet/pkg/money"
)

// Line is one product in the cart: a denormalized snapshot of the product at
// the moment it was added, with the chosen quantity and discount.
type Line struct {
	ShopID          int
	ProductID       int
	ProductName     string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// DiscountedUnitPrice is unitPrice * (1 - discountPercent/100), full
// precision.
func (l Line) DiscountedUnitPrice() decimal.Decimal {
	return money.Discounted(l.UnitPrice, l.DiscountPercent)
}

// Total is the discounted unit price times the quantity.
func (l Line) Total() decimal.Decimal {
	return l.DiscountedUnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger holds the cart lines in insertion order.
type Ledger struct {
	lines []Line
}

// New creates an empty cart.
func New() *Ledger {
	return &Ledger{}
}

// AddLine appends a line to the cart.
func (c *Ledger) AddLine(line Line) {
	c.lines = append(c.lines, line)
}

// SetQuantity replaces the quantity of the line matching (shopID, productID).
// A missing line is a no-op; quantity bounds are the caller's concern.
func (c *Ledger) SetQuantity(shopID, productID, quantity int) {
	for i := range c.lines {
		if c.lines[i].ShopID == shopID && c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveLine removes the first line matching (shopID, productID).
func (c *Ledger) RemoveLine(shopID, productID int) {
	for i := range c.lines {
		if c.lines[i].ShopID == shopID && c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear drops every line.
func (c *Ledger) Clear() {
	c.lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Ledger) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Ledger) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ShopOrder returns the shop ids in insertion order of each shop's first
// line. Persisted output groups by shop in exactly this order.
func (c *Ledger) ShopOrder() []int {
	seen := make(map[int]bool)
	var order []int
	for _, l := range c.lines {
		if !seen[l.ShopID] {
			seen[l.ShopID] = true
			order = append(order, l.ShopID)
		}
	}
	return order
}

// LinesByShop groups the cart lines by shop id, each group in insertion
// order.
func (c *Ledger) LinesByShop() map[int][]Line {
	groups := make(map[int][]Line)
	for _, l := range c.lines {
		groups[l.ShopID] = append(groups[l.ShopID], l)
	}
	return groups
}

// ShopTotal sums discounted line totals over the lines of one shop.
func (c *Ledger) ShopTotal(shopID int) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		if l.ShopID == shopID {
			total = total.Add(l.Total())
		}
	}
	return total
}

// GrandTotal sums discounted line totals over the whole cart.
func (c *Ledger) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}
