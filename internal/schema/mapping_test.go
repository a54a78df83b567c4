package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMapping_StringToDateTime(t *testing.T) {
	out, err := ApplyMapping("ts", DatatypeMapping{From: "string", To: "datetime"}, "2024-01-02 03:04:05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02 03:04:05", out)
}

func TestApplyMapping_DateTimeToDate(t *testing.T) {
	out, err := ApplyMapping("ts", DatatypeMapping{From: "datetime", To: "date"}, "2024-01-02 03:04:05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", out)
}

func TestApplyMapping_DateTimeToTime(t *testing.T) {
	out, err := ApplyMapping("ts", DatatypeMapping{From: "datetime", To: "time"}, "2024-01-02 03:04:05")
	require.NoError(t, err)
	assert.Equal(t, "03:04:05", out)
}

func TestApplyMapping_StringToFloatRounds(t *testing.T) {
	out, err := ApplyMapping("x", DatatypeMapping{From: "string", To: "float", Strategy: "round", Options: map[string]string{"scale": "2"}}, "3.14159")
	require.NoError(t, err)
	assert.Equal(t, "3.14", out)
}

func TestApplyMapping_StringToCurrency(t *testing.T) {
	out, err := ApplyMapping("amount", DatatypeMapping{From: "string", To: "currency"}, "$1,234.50")
	require.NoError(t, err)
	assert.Equal(t, "1234.50", out)
}

func TestApplyMapping_CurrencyToDecimal_ValidatesDigits(t *testing.T) {
	_, err := ApplyMapping("amount", DatatypeMapping{From: "currency", To: "decimal(3,2)"}, "$1,234.50")
	assert.Error(t, err)
}

func TestApplyMapping_CurrencyToDecimal(t *testing.T) {
	out, err := ApplyMapping("amount", DatatypeMapping{From: "currency", To: "decimal(10,2)"}, "$1,234.50")
	require.NoError(t, err)
	assert.Equal(t, "1234.50", out)
}

func TestApplyMapping_UnknownStrategy(t *testing.T) {
	_, err := ApplyMapping("amount", DatatypeMapping{From: "string", To: "currency", Strategy: "bogus"}, "$1.00")
	assert.Error(t, err)
}

func TestApplyMapping_UnsupportedConversion(t *testing.T) {
	_, err := ApplyMapping("x", DatatypeMapping{From: "string", To: "guid"}, "abc")
	assert.Error(t, err)
}
