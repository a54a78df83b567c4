package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType_BareTokens(t *testing.T) {
	cases := map[string]Kind{
		"string":   KindString,
		"integer":  KindInteger,
		"int":      KindInteger,
		"float":    KindFloat,
		"double":   KindFloat,
		"boolean":  KindBoolean,
		"bool":     KindBoolean,
		"date":     KindDate,
		"datetime": KindDateTime,
		"timestamp": KindDateTime,
		"time":     KindTime,
		"guid":     KindGuid,
		"uuid":     KindGuid,
		"currency": KindCurrency,
	}
	for token, want := range cases {
		ty, err := ParseType(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, ty.Kind, token)
	}
}

func TestParseType_DecimalPositional(t *testing.T) {
	ty, err := ParseType("decimal(10,2)")
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, ty.Kind)
	assert.Equal(t, 10, ty.Precision)
	assert.Equal(t, 2, ty.Scale)
}

func TestParseType_DecimalNamed(t *testing.T) {
	ty, err := ParseType("decimal(precision=12, scale=4)")
	require.NoError(t, err)
	assert.Equal(t, 12, ty.Precision)
	assert.Equal(t, 4, ty.Scale)
}

func TestParseType_DecimalExceedsMaxPrecision(t *testing.T) {
	_, err := ParseType("decimal(29,2)")
	assert.Error(t, err)
}

func TestParseType_DecimalScaleExceedsPrecision(t *testing.T) {
	_, err := ParseType("decimal(4,5)")
	assert.Error(t, err)
}

func TestParseType_Unknown(t *testing.T) {
	_, err := ParseType("not-a-type")
	assert.Error(t, err)
}

func TestType_String(t *testing.T) {
	ty := Type{Kind: KindDecimal, Precision: 10, Scale: 2}
	assert.Equal(t, "decimal(10,2)", ty.String())
	assert.Equal(t, "string", Type{Kind: KindString}.String())
}
