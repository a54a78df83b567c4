package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypedValue_EmptyIsAbsent(t *testing.T) {
	v, ok, err := ParseTypedValue("", Type{Kind: KindInteger})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Value{}, v)
}

func TestParseTypedValue_Integer(t *testing.T) {
	v, ok, err := ParseTypedValue("42", Type{Kind: KindInteger})
	require.NoError(t, err)
	require.True(t, ok)
	i, _ := v.AsInteger()
	assert.Equal(t, int64(42), i)
}

func TestParseTypedValue_IntegerInvalid(t *testing.T) {
	_, _, err := ParseTypedValue("abc", Type{Kind: KindInteger})
	assert.Error(t, err)
}

func TestParseTypedValue_Boolean(t *testing.T) {
	v, ok, err := ParseTypedValue("YES", Type{Kind: KindBoolean})
	require.NoError(t, err)
	require.True(t, ok)
	b, _ := v.AsBoolean()
	assert.True(t, b)

	v, ok, err = ParseTypedValue("0", Type{Kind: KindBoolean})
	require.NoError(t, err)
	require.True(t, ok)
	b, _ = v.AsBoolean()
	assert.False(t, b)
}

func TestParseTypedValue_Guid_StripsBraces(t *testing.T) {
	v, ok, err := ParseTypedValue("{123e4567-e89b-12d3-a456-426614174000}", Type{Kind: KindGuid})
	require.NoError(t, err)
	require.True(t, ok)
	g, _ := v.AsGuid()
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", g.String())
}

func TestParseTypedValue_Currency(t *testing.T) {
	v, ok, err := ParseTypedValue("$1,000.50", Type{Kind: KindCurrency})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1000.50", v.Display())
}

func TestParseTypedValue_Decimal_EnforcesPrecision(t *testing.T) {
	_, _, err := ParseTypedValue("12345.6", Type{Kind: KindDecimal, Precision: 5, Scale: 1})
	assert.Error(t, err)
}

func TestParseTypedValue_Decimal_Rescales(t *testing.T) {
	v, ok, err := ParseTypedValue("3.1", Type{Kind: KindDecimal, Precision: 5, Scale: 3})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3.100", v.Display())
}

func TestParseTypedValue_Decimal_RejectsRescaleInducedCarry(t *testing.T) {
	// 9.996 has 1 integer digit and fits precision-scale=1 before
	// rounding, but rounds up to 10.00, which needs 2 integer digits.
	_, _, err := ParseTypedValue("9.996", Type{Kind: KindDecimal, Precision: 3, Scale: 2})
	assert.Error(t, err)
}

func TestParseTypedValue_Date(t *testing.T) {
	v, ok, err := ParseTypedValue("2024-05-01", Type{Kind: KindDate})
	require.NoError(t, err)
	require.True(t, ok)
	d, _ := v.AsDate()
	assert.Equal(t, Date{2024, 5, 1}, d)
}
