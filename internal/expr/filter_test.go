package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"csveng/internal/schema"
	"csveng/internal/value"
)

func intSchema() schema.Schema {
	return schema.Schema{
		SchemaVersion: schema.CurrentSchemaVersion,
		HasHeaders:    true,
		Columns: []schema.Column{
			schema.NewColumn("id", value.Type{Kind: value.KindInteger}),
			schema.NewColumn("name", value.Type{Kind: value.KindString}),
		},
	}
}

func TestParseFilters_SymbolOperators(t *testing.T) {
	conds, err := ParseFilters([]string{"id>=10", "name!=bob"})
	require.NoError(t, err)
	require.Len(t, conds, 2)
	require.Equal(t, OpGe, conds[0].Operator)
	require.Equal(t, "10", conds[0].RawValue)
	require.Equal(t, OpNotEq, conds[1].Operator)
}

func TestParseFilters_WordOperators(t *testing.T) {
	conds, err := ParseFilters([]string{`name contains "bo"`})
	require.NoError(t, err)
	require.Equal(t, OpContains, conds[0].Operator)
	require.Equal(t, "bo", conds[0].RawValue)
}

func TestParseFilters_Unquote(t *testing.T) {
	conds, err := ParseFilters([]string{`name = 'bob'`})
	require.NoError(t, err)
	require.Equal(t, "bob", conds[0].RawValue)
}

func TestParseFilters_EmptyErrors(t *testing.T) {
	_, err := ParseFilters([]string{"   "})
	require.Error(t, err)
}

func TestParseFilters_Unparseable(t *testing.T) {
	_, err := ParseFilters([]string{"nonsense"})
	require.Error(t, err)
}

func TestEvaluateConditions_NumericComparison(t *testing.T) {
	s := intSchema()
	headers := s.Headers()
	conds, err := ParseFilters([]string{"id>=10"})
	require.NoError(t, err)

	typedRow := []value.ComparableValue{value.Present(value.NewInteger(10)), value.Absent()}
	ok, err := EvaluateConditions(conds, s, headers, []string{"10", ""}, typedRow)
	require.NoError(t, err)
	require.True(t, ok)

	typedRow = []value.ComparableValue{value.Present(value.NewInteger(5)), value.Absent()}
	ok, err = EvaluateConditions(conds, s, headers, []string{"5", ""}, typedRow)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluateConditions_ContainsUsesRawValue(t *testing.T) {
	s := intSchema()
	headers := s.Headers()
	conds, err := ParseFilters([]string{`name contains "ob"`})
	require.NoError(t, err)

	raw := []string{"1", "bob"}
	typedRow := []value.ComparableValue{value.Present(value.NewInteger(1)), value.Present(value.NewString("bob"))}
	ok, err := EvaluateConditions(conds, s, headers, raw, typedRow)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluateConditions_UnknownColumnErrors(t *testing.T) {
	s := intSchema()
	conds, err := ParseFilters([]string{"missing=1"})
	require.NoError(t, err)
	_, err = EvaluateConditions(conds, s, s.Headers(), []string{"1", "x"}, nil)
	require.Error(t, err)
}

func TestEvaluateConditions_BothAbsentEqualsTrue(t *testing.T) {
	s := intSchema()
	conds, err := ParseFilters([]string{"name="}) // empty RHS -> absent
	require.NoError(t, err)
	typedRow := []value.ComparableValue{value.Present(value.NewInteger(1)), value.Absent()}
	ok, err := EvaluateConditions(conds, s, s.Headers(), []string{"1", ""}, typedRow)
	require.NoError(t, err)
	require.True(t, ok)
}
