package value

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundingStrategy(t *testing.T) {
	s, err := ParseRoundingStrategy("")
	require.NoError(t, err)
	assert.Equal(t, RoundHalfAwayFromZero, s)

	s, err = ParseRoundingStrategy("truncate")
	require.NoError(t, err)
	assert.Equal(t, RoundTruncate, s)

	_, err = ParseRoundingStrategy("banker")
	assert.Error(t, err)
}

func TestRescale_RoundHalfAwayFromZero(t *testing.T) {
	d := decimal.RequireFromString("1.005")
	got := Rescale(d, 2, RoundHalfAwayFromZero)
	assert.Equal(t, "1.01", got.StringFixed(2))

	neg := decimal.RequireFromString("-1.005")
	got = Rescale(neg, 2, RoundHalfAwayFromZero)
	assert.Equal(t, "-1.01", got.StringFixed(2))
}

func TestRescale_Truncate(t *testing.T) {
	d := decimal.RequireFromString("1.999")
	got := Rescale(d, 2, RoundTruncate)
	assert.Equal(t, "1.99", got.StringFixed(2))
}

func TestValidateDecimalDigits(t *testing.T) {
	d := decimal.RequireFromString("123.45")
	assert.NoError(t, ValidateDecimalDigits(d, 5, 2))
	assert.Error(t, ValidateDecimalDigits(d, 4, 2))

	zero := decimal.Zero
	assert.NoError(t, ValidateDecimalDigits(zero, 1, 0))
}

func TestParseCurrencyToken_Basic(t *testing.T) {
	d, scale, err := ParseCurrencyToken("$1,234.56")
	require.NoError(t, err)
	assert.Equal(t, 2, scale)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))
}

func TestParseCurrencyToken_ParenNegative(t *testing.T) {
	d, _, err := ParseCurrencyToken("($42.00)")
	require.NoError(t, err)
	assert.True(t, d.IsNegative())
}

func TestParseCurrencyToken_IntegerOnlyDefaultsScale2(t *testing.T) {
	_, scale, err := ParseCurrencyToken("100")
	require.NoError(t, err)
	assert.Equal(t, 2, scale)
}

func TestParseCurrencyToken_RejectsOddFractionalDigits(t *testing.T) {
	_, _, err := ParseCurrencyToken("$1.123")
	assert.Error(t, err)
}

func TestParseCurrencyToken_RejectsGarbage(t *testing.T) {
	_, _, err := ParseCurrencyToken("not money")
	assert.Error(t, err)
}

func TestParseDecimalToken_ScientificNotation(t *testing.T) {
	d, err := ParseDecimalToken("1.5e3")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1500")))
}

func TestFormatScaled(t *testing.T) {
	d := decimal.RequireFromString("3.1")
	assert.Equal(t, "3.100", FormatScaled(d, 3))
}
