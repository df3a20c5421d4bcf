package summary

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAFIKME/ordersheet/internal/sheet"
	"github.com/RAFIKME/ordersheet/pkg/paths"
)

func testWriter(t *testing.T) (*Writer, *paths.Provider, *sheet.Codec) {
	t.Helper()
	provider := paths.NewProvider(t.TempDir())
	codec := sheet.NewCodec(zerolog.Nop())
	return NewWriter(Options{}, provider, codec, zerolog.Nop()), provider, codec
}

func testResult() Result {
	return Result{
		AllRows: []Row{
			{Product: "Milk", Count: 2, Total: decimal.NewFromInt(200)},
			{Product: "Ընդհանուր", Count: 0, Total: decimal.NewFromInt(200)},
			{Product: "Bread", Count: 1, Total: decimal.NewFromInt(150)},
		},
		Net: []Row{
			{Product: "Milk", Count: 2, Total: decimal.NewFromInt(200)},
			{Product: "Bread", Count: 1, Total: decimal.NewFromInt(150)},
		},
		AllRowsTotal:  decimal.NewFromInt(550),
		NetTotal:      decimal.NewFromInt(350),
		EntriesParsed: 3,
	}
}

func TestWriteProducesBothWorkbooks(t *testing.T) {
	w, provider, codec := testWriter(t)

	allPath, netPath, err := w.Write(testResult())
	require.NoError(t, err)
	assert.Equal(t, provider.Path(DefaultAllRowsFile), allPath)
	assert.Equal(t, provider.Path(DefaultNetFile), netPath)

	sheetName, allRows, err := codec.ReadRaw(allPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultSheet, sheetName)
	assert.Len(t, allRows, 5) // header + 3 products + grand total

	_, netRows, err := codec.ReadRaw(netPath)
	require.NoError(t, err)
	assert.Len(t, netRows, 4)
}

func TestWriteProductRowsAreNumeric(t *testing.T) {
	w, _, codec := testWriter(t)

	allPath, _, err := w.Write(testResult())
	require.NoError(t, err)

	_, rows, err := codec.ReadRaw(allPath)
	require.NoError(t, err)

	milk := rows[1]
	assert.Equal(t, "Milk", milk.At(0).Text())
	assert.Equal(t, sheet.KindNumber, milk.At(1).Kind)
	assert.Equal(t, 2.0, milk.At(1).Num)
	assert.Equal(t, sheet.KindNumber, milk.At(2).Kind)
	assert.Equal(t, 200.0, milk.At(2).Num)
}

func TestGrandTotalCellShapes(t *testing.T) {
	w, _, codec := testWriter(t)

	allPath, netPath, err := w.Write(testResult())
	require.NoError(t, err)

	// All-rows workbook: numeric grand total.
	_, rows, err := codec.ReadRaw(allPath)
	require.NoError(t, err)
	last := rows[len(rows)-1]
	assert.Equal(t, "Ընդհանուր", last.At(0).Text())
	assert.True(t, last.At(1).IsBlank())
	assert.Equal(t, sheet.KindNumber, last.At(2).Kind)
	assert.Equal(t, 550.0, last.At(2).Num)

	// Net workbook: display-formatted grand total.
	_, rows, err = codec.ReadRaw(netPath)
	require.NoError(t, err)
	last = rows[len(rows)-1]
	assert.Equal(t, sheet.KindString, last.At(2).Kind)
	assert.Equal(t, "350 AMD", last.At(2).Text())
}

func TestWriteOverwritesPreviousRun(t *testing.T) {
	w, _, codec := testWriter(t)

	_, _, err := w.Write(testResult())
	require.NoError(t, err)

	smaller := Result{
		AllRows:      []Row{{Product: "Milk", Count: 1, Total: decimal.NewFromInt(100)}},
		Net:          []Row{{Product: "Milk", Count: 1, Total: decimal.NewFromInt(100)}},
		AllRowsTotal: decimal.NewFromInt(100),
		NetTotal:     decimal.NewFromInt(100),
	}
	allPath, _, err := w.Write(smaller)
	require.NoError(t, err)

	_, rows, err := codec.ReadRaw(allPath)
	require.NoError(t, err)
	assert.Len(t, rows, 3) // header + one product + grand total
}

func TestWriterCustomFileNames(t *testing.T) {
	provider := paths.NewProvider(t.TempDir())
	codec := sheet.NewCodec(zerolog.Nop())
	w := NewWriter(Options{AllRowsFile: "All.xlsx", NetFile: "Net.xlsx"}, provider, codec, zerolog.Nop())

	all, net := w.Files()
	assert.Equal(t, "All.xlsx", all)
	assert.Equal(t, "Net.xlsx", net)
}
