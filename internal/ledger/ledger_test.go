package ledger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAFIKME/ordersheet/internal/cart"
	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

type fixture struct {
	persister *Persister
	provider  *paths.Provider
	codec     *sheet.Codec
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	provider := paths.NewProvider(t.TempDir())
	codec := sheet.NewCodec(zerolog.Nop())
	return fixture{
		persister: NewPersister(Options{}, provider, codec, zerolog.Nop()),
		provider:  provider,
		codec:     codec,
	}
}

func cartLine(shopID int, name string, qty int, price, discount int64) cart.Line {
	return cart.Line{
		ShopID:          shopID,
		ProductName:     name,
		Quantity:        qty,
		UnitPrice:       decimal.NewFromInt(price),
		DiscountPercent: decimal.NewFromInt(discount),
	}
}

func TestAppendCreatesLedgerWithHeader(t *testing.T) {
	fx := newFixture(t)

	c := cart.New()
	c.AddLine(cartLine(1, "Milk", 2, 100, 0))
	require.NoError(t, fx.persister.Append(c, func(int) string { return "Shop 1" }))

	sheetName, rows, err := fx.codec.ReadRaw(fx.provider.Path(fx.persister.File()))
	require.NoError(t, err)
	assert.Equal(t, DefaultSheet, sheetName)
	require.Len(t, rows, 3) // header + line + subtotal marker

	assert.Equal(t, "Shop Name", rows[0].At(0).Text())
}

func TestAppendRowShapes(t *testing.T) {
	fx := newFixture(t)

	c := cart.New()
	c.AddLine(cartLine(1, "Milk", 2, 100, 0))
	require.NoError(t, fx.persister.Append(c, func(int) string { return "Shop 1" }))

	_, rows, err := fx.codec.ReadRaw(fx.provider.Path(fx.persister.File()))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	lineRow := rows[1]
	assert.Equal(t, "Shop 1", lineRow.At(0).Text())
	assert.Equal(t, "Milk", lineRow.At(1).Text())
	assert.Equal(t, sheet.KindNumber, lineRow.At(2).Kind)
	assert.Equal(t, 2.0, lineRow.At(2).Num)
	assert.Equal(t, "100 AMD", lineRow.At(3).Text())
	assert.Equal(t, "200 AMD", lineRow.At(4).Text())

	marker := rows[2]
	assert.Equal(t, DefaultSubtotalSentinel, marker.At(0).Text())
	assert.Equal(t, DefaultTotalLabel, marker.At(1).Text())
	assert.Equal(t, sheet.KindNumber, marker.At(2).Kind)
	assert.Equal(t, 0.0, marker.At(2).Num)
	assert.Equal(t, sheet.KindString, marker.At(3).Kind)
	assert.Equal(t, "1", marker.At(3).Text())
	assert.Equal(t, "200 AMD", marker.At(4).Text())
}

func TestAppendGroupsByShopInInsertionOrder(t *testing.T) {
	fx := newFixture(t)

	c := cart.New()
	c.AddLine(cartLine(2, "Milk", 1, 100, 0))
	c.AddLine(cartLine(1, "Bread", 1, 150, 0))
	c.AddLine(cartLine(2, "Cheese", 1, 300, 0))

	labels := map[int]string{1: "Shop 1", 2: "Shop 2"}
	require.NoError(t, fx.persister.Append(c, func(id int) string { return labels[id] }))

	entries, err := fx.persister.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 5)

	// Shop 2's group first (its line was added first), then shop 1's.
	assert.Equal(t, "Milk", entries[0].ProductName)
	assert.Equal(t, "Cheese", entries[1].ProductName)
	assert.Equal(t, DefaultSubtotalSentinel, entries[2].ShopLabel)
	assert.Equal(t, "400 AMD", entries[2].TotalStr)
	assert.Equal(t, "Bread", entries[3].ProductName)
	assert.Equal(t, DefaultSubtotalSentinel, entries[4].ShopLabel)
	assert.Equal(t, "150 AMD", entries[4].TotalStr)
}

func TestSecondAppendPreservesEarlierRows(t *testing.T) {
	fx := newFixture(t)
	label := func(int) string { return "Shop 1" }

	first := cart.New()
	first.AddLine(cartLine(1, "Milk", 1, 100, 0))
	require.NoError(t, fx.persister.Append(first, label))

	second := cart.New()
	second.AddLine(cartLine(1, "Bread", 1, 150, 0))
	require.NoError(t, fx.persister.Append(second, label))

	entries, err := fx.persister.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	markers := 0
	for _, e := range entries {
		if e.ShopLabel == DefaultSubtotalSentinel {
			markers++
		}
	}
	assert.Equal(t, 2, markers)
}

func TestClearKeepsOnlyHeader(t *testing.T) {
	fx := newFixture(t)

	c := cart.New()
	c.AddLine(cartLine(1, "Milk", 1, 100, 0))
	require.NoError(t, fx.persister.Append(c, func(int) string { return "Shop 1" }))

	require.NoError(t, fx.persister.Clear())

	_, rows, err := fx.codec.ReadRaw(fx.provider.Path(fx.persister.File()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Shop Name", rows[0].At(0).Text())

	entries, err := fx.persister.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearMissingLedger(t *testing.T) {
	fx := newFixture(t)

	err := fx.persister.Clear()
	assert.ErrorIs(t, err, sheet.ErrMissingFile)
}

func TestEntriesMissingLedgerIsEmpty(t *testing.T) {
	fx := newFixture(t)

	entries, err := fx.persister.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCustomLabels(t *testing.T) {
	provider := paths.NewProvider(t.TempDir())
	codec := sheet.NewCodec(zerolog.Nop())
	p := NewPersister(Options{
		SubtotalSentinel: "SUBTOTAL",
		TotalLabel:       "TOTAL",
		CurrencySuffix:   "USD",
	}, provider, codec, zerolog.Nop())

	c := cart.New()
	c.AddLine(cartLine(1, "Milk", 1, 100, 0))
	require.NoError(t, p.Append(c, func(int) string { return "Shop 1" }))

	entries, err := p.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "100 USD", entries[0].TotalStr)
	assert.Equal(t, "SUBTOTAL", entries[1].ShopLabel)
	assert.Equal(t, "TOTAL", entries[1].ProductName)
	assert.Equal(t, "SUBTOTAL", p.Sentinel())
}
