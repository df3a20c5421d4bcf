package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatTruncatesToWholeUnits(t *testing.T) {
	assert.Equal(t, "199 AMD", Format(decimal.NewFromFloat(199.9)))
	assert.Equal(t, "0 AMD", Format(decimal.Zero))
	assert.Equal(t, "1250 AMD", Format(decimal.NewFromInt(1250)))
}

func TestFormatWithSuffix(t *testing.T) {
	assert.Equal(t, "42 USD", FormatWith(decimal.NewFromInt(42), "USD"))
}

func TestParseStripsNonDigits(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"200 AMD", 200, true},
		{"1,234 AMD", 1234, true},
		{"1250AMD", 1250, true},
		{"1", 1, true},
		{"", 0, false},
		{"AMD", 0, false},
	}
	for _, tc := range tests {
		got, ok := Parse(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if ok {
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "input %q", tc.in)
		}
	}
}

func TestDiscounted(t *testing.T) {
	price := decimal.NewFromInt(100)

	assert.True(t, Discounted(price, decimal.Zero).Equal(price))
	assert.True(t, Discounted(price, decimal.NewFromInt(10)).Equal(decimal.NewFromInt(90)))
	assert.True(t, Discounted(price, decimal.NewFromInt(100)).Equal(decimal.Zero))
}
