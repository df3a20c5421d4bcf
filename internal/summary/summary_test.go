package summary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAFIKME/ordersheet/internal/ledger"
)

const sentinel = ledger.DefaultSubtotalSentinel

func entry(shop, product string, count int, total string) ledger.Entry {
	return ledger.Entry{
		ShopLabel:   shop,
		ProductName: product,
		Count:       count,
		TotalStr:    total,
	}
}

func TestAggregateSplitsNetFromAllRows(t *testing.T) {
	entries := []ledger.Entry{
		entry("Shop 1", "Milk", 2, "200 AMD"),
		entry(sentinel, ledger.DefaultTotalLabel, 0, "200 AMD"),
		entry("Shop 2", "Bread", 1, "150 AMD"),
	}

	res := Aggregate(entries, sentinel)

	assert.Equal(t, 3, res.EntriesParsed)
	assert.True(t, res.AllRowsTotal.Equal(decimal.NewFromInt(550)))
	assert.True(t, res.NetTotal.Equal(decimal.NewFromInt(350)))

	require.Len(t, res.AllRows, 3)
	assert.Equal(t, "Milk", res.AllRows[0].Product)
	assert.Equal(t, ledger.DefaultTotalLabel, res.AllRows[1].Product)
	assert.Equal(t, "Bread", res.AllRows[2].Product)

	require.Len(t, res.Net, 2)
	assert.Equal(t, "Milk", res.Net[0].Product)
	assert.Equal(t, "Bread", res.Net[1].Product)
}

func TestAggregateMergesRepeatedProducts(t *testing.T) {
	entries := []ledger.Entry{
		entry("Shop 1", "Milk", 2, "200 AMD"),
		entry("Shop 2", "Milk", 3, "300 AMD"),
	}

	res := Aggregate(entries, sentinel)

	require.Len(t, res.Net, 1)
	assert.Equal(t, "Milk", res.Net[0].Product)
	assert.Equal(t, 5, res.Net[0].Count)
	assert.True(t, res.Net[0].Total.Equal(decimal.NewFromInt(500)))
}

func TestAggregateSkipsUnparseableTotals(t *testing.T) {
	entries := []ledger.Entry{
		entry("Shop 1", "Milk", 2, "200 AMD"),
		entry("Shop 1", "Bread", 1, "free"),
	}

	res := Aggregate(entries, sentinel)

	assert.Equal(t, 1, res.EntriesParsed)
	require.Len(t, res.Net, 1)
	assert.Equal(t, "Milk", res.Net[0].Product)
}

func TestAggregateEmptyLedger(t *testing.T) {
	res := Aggregate(nil, sentinel)

	assert.Zero(t, res.EntriesParsed)
	assert.Empty(t, res.AllRows)
	assert.Empty(t, res.Net)
	assert.True(t, res.AllRowsTotal.Equal(decimal.Zero))
}

func TestAggregateIsIdempotent(t *testing.T) {
	entries := []ledger.Entry{
		entry("Shop 1", "Milk", 2, "200 AMD"),
		entry(sentinel, ledger.DefaultTotalLabel, 0, "200 AMD"),
	}

	first := Aggregate(entries, sentinel)
	second := Aggregate(entries, sentinel)

	assert.Equal(t, first, second)
}
