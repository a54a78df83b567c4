package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefinition_MixedDirections(t *testing.T) {
	def, err := ParseDefinition("col1:desc,col2:asc,col3")
	require.NoError(t, err)
	require.Equal(t, []string{"col1", "col2", "col3"}, def.Columns)
	require.Equal(t, []SortDirection{Desc, Asc, Asc}, def.Directions)
	require.Empty(t, def.Name)
}

func TestParseDefinition_NamedVariant(t *testing.T) {
	def, err := ParseDefinition("top=col1:desc,col2")
	require.NoError(t, err)
	require.Equal(t, "top", def.Name)
	require.Equal(t, []string{"col1", "col2"}, def.Columns)
	require.Equal(t, []SortDirection{Desc, Asc}, def.Directions)
}

func TestParseDefinition_EmptyNameErrors(t *testing.T) {
	_, err := ParseDefinition("=col1")
	require.Error(t, err)
}

func TestParseDefinition_UnknownDirectionErrors(t *testing.T) {
	_, err := ParseDefinition("col1:sideways")
	require.Error(t, err)
}

func TestFromColumns(t *testing.T) {
	def, err := FromColumns([]string{" a ", "b", ""})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, def.Columns)
	require.Equal(t, []SortDirection{Asc, Asc}, def.Directions)
}

func TestFromColumns_EmptyErrors(t *testing.T) {
	_, err := FromColumns([]string{"", "  "})
	require.Error(t, err)
}

func TestExpandComboSpec_GeneratesPrefixVariants(t *testing.T) {
	variants, err := ExpandComboSpec("col1:asc|desc,col2:asc")
	require.NoError(t, err)
	require.Len(t, variants, 4)

	var sawCol1Asc, sawCol1Desc, sawBoth bool
	for _, v := range variants {
		switch {
		case len(v.Columns) == 1 && v.Columns[0] == "col1" && v.Directions[0] == Asc:
			sawCol1Asc = true
		case len(v.Columns) == 1 && v.Columns[0] == "col1" && v.Directions[0] == Desc:
			sawCol1Desc = true
		case len(v.Columns) == 2 && v.Columns[0] == "col1" && v.Columns[1] == "col2" &&
			v.Directions[0] == Asc && v.Directions[1] == Asc:
			sawBoth = true
			require.Contains(t, v.Name, "col1-asc")
		}
	}
	require.True(t, sawCol1Asc)
	require.True(t, sawCol1Desc)
	require.True(t, sawBoth)
}

func TestExpandComboSpec_HonorsNamePrefix(t *testing.T) {
	variants, err := ExpandComboSpec("geo=country:asc|desc,region:asc|desc")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(variants), 4)
	for _, v := range variants {
		require.Contains(t, v.Name, "geo_")
		require.Equal(t, "country", v.Columns[0])
	}
}

func TestExpandComboSpec_NoColumnsErrors(t *testing.T) {
	_, err := ExpandComboSpec("name=")
	require.Error(t, err)
}

func TestSanitizeIdentifier(t *testing.T) {
	require.Equal(t, "a_b_c", sanitizeIdentifier("a b-c"))
}
