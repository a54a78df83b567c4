package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"csveng/internal/value"
)

func TestVariant_Matches(t *testing.T) {
	v := Variant{Columns: []string{"a", "b"}, Directions: []SortDirection{Asc, Desc}}

	require.True(t, v.Matches([]SortDirective{{Column: "a", Direction: Asc}, {Column: "b", Direction: Desc}}))
	require.True(t, v.Matches([]SortDirective{{Column: "a", Direction: Asc}, {Column: "b", Direction: Desc}, {Column: "c", Direction: Asc}}))
	require.False(t, v.Matches([]SortDirective{{Column: "a", Direction: Asc}}))
	require.False(t, v.Matches([]SortDirective{{Column: "a", Direction: Desc}, {Column: "b", Direction: Desc}}))
}

func TestVariant_Describe(t *testing.T) {
	v := Variant{Columns: []string{"a"}, Directions: []SortDirection{Desc}, Name: "top"}
	require.Equal(t, "top -> a:desc", v.Describe())

	v2 := Variant{Columns: []string{"a"}, Directions: []SortDirection{Asc}}
	require.Equal(t, "a:asc", v2.Describe())
}

func TestVariantBuilder_GroupsAndSortsByKey(t *testing.T) {
	def := Definition{Columns: []string{"a"}, Directions: []SortDirection{Asc}}
	b, err := newVariantBuilder(def, []string{"a", "b"}, func(string) value.Type {
		return value.Type{Kind: value.KindInteger}
	})
	require.NoError(t, err)

	require.NoError(t, b.addRow([]string{"3", "x"}, 30))
	require.NoError(t, b.addRow([]string{"1", "y"}, 10))
	require.NoError(t, b.addRow([]string{"2", "z"}, 20))
	require.NoError(t, b.addRow([]string{"1", "w"}, 11))

	v := b.finish()
	require.Equal(t, []uint64{10, 11, 20, 30}, v.OrderedOffsets())
}

func TestVariantBuilder_DescendingOrder(t *testing.T) {
	def := Definition{Columns: []string{"a"}, Directions: []SortDirection{Desc}}
	b, err := newVariantBuilder(def, []string{"a"}, func(string) value.Type {
		return value.Type{Kind: value.KindInteger}
	})
	require.NoError(t, err)

	require.NoError(t, b.addRow([]string{"1"}, 1))
	require.NoError(t, b.addRow([]string{"3"}, 3))
	require.NoError(t, b.addRow([]string{"2"}, 2))

	v := b.finish()
	require.Equal(t, []uint64{3, 2, 1}, v.OrderedOffsets())
}

func TestVariantBuilder_UnknownColumnErrors(t *testing.T) {
	def := Definition{Columns: []string{"missing"}, Directions: []SortDirection{Asc}}
	_, err := newVariantBuilder(def, []string{"a"}, func(string) value.Type { return value.Type{Kind: value.KindString} })
	require.Error(t, err)
}
