package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rowReaderFrom(rows [][]string) RowReader {
	i := 0
	offset := uint64(0)
	return func() (uint64, []string, bool, error) {
		if i >= len(rows) {
			return 0, nil, false, nil
		}
		row := rows[i]
		start := offset
		offset += uint64(len(row)) + 1
		i++
		return start, row, true, nil
	}
}

func TestBuild_MultipleVariantsAndBestMatch(t *testing.T) {
	headers := []string{"a", "b", "c"}
	rows := [][]string{
		{"1", "x", "alpha"},
		{"2", "y", "beta"},
		{"3", "z", "gamma"},
	}

	defA, err := FromColumns([]string{"a"})
	require.NoError(t, err)
	defDesc, err := ParseDefinition("descending=a:desc,b:asc")
	require.NoError(t, err)

	idx, err := Build(headers, []Definition{defA, defDesc}, nil, 0, rowReaderFrom(rows))
	require.NoError(t, err)
	require.Len(t, idx.Variants, 2)
	require.Equal(t, 3, idx.RowCount)

	ascMatch, ok := idx.BestMatch([]SortDirective{{Column: "a", Direction: Asc}})
	require.True(t, ok)
	require.Equal(t, []string{"a"}, ascMatch.Columns)

	descMatch, ok := idx.BestMatch([]SortDirective{
		{Column: "a", Direction: Desc},
		{Column: "b", Direction: Asc},
	})
	require.True(t, ok)
	require.Equal(t, "descending", descMatch.Name)
	require.Equal(t, []string{"a", "b"}, descMatch.Columns)

	offsets := descMatch.OrderedOffsets()
	require.Len(t, offsets, 3)
	require.Greater(t, offsets[0], offsets[2])
}

func TestBuild_NoDefinitionsErrors(t *testing.T) {
	_, err := Build([]string{"a"}, nil, nil, 0, rowReaderFrom(nil))
	require.Error(t, err)
}

func TestBuild_RespectsLimit(t *testing.T) {
	def, err := FromColumns([]string{"a"})
	require.NoError(t, err)
	rows := [][]string{{"1"}, {"2"}, {"3"}}
	idx, err := Build([]string{"a"}, []Definition{def}, nil, 2, rowReaderFrom(rows))
	require.NoError(t, err)
	require.Equal(t, 2, idx.RowCount)
}

func TestIndex_VariantByName(t *testing.T) {
	def, err := ParseDefinition("top=a")
	require.NoError(t, err)
	idx, err := Build([]string{"a"}, []Definition{def}, nil, 0, rowReaderFrom([][]string{{"1"}}))
	require.NoError(t, err)

	v, ok := idx.VariantByName("top")
	require.True(t, ok)
	require.Equal(t, []string{"a"}, v.Columns)

	_, ok = idx.VariantByName("missing")
	require.False(t, ok)
}
