package dataio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestOpenSource_ReadsHeaders(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2,3\n4,5,6\n")
	src, err := OpenSource(path, ',', encoding.Nop, true)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, []string{"a", "b", "c"}, src.Headers())
}

func TestSource_Scan_VisitsAllRowsWithOffsets(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,4\n")
	src, err := OpenSource(path, ',', encoding.Nop, true)
	require.NoError(t, err)
	defer src.Close()

	var rows [][]string
	var offsets []uint64
	err = src.Scan(func(offset uint64, row []string) (bool, error) {
		offsets = append(offsets, offset)
		rows = append(rows, row)
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rows)
	require.Len(t, offsets, 2)
	require.Less(t, offsets[0], offsets[1])
}

func TestSource_ReadAt_SeeksToRecordStart(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,4\n")
	src, err := OpenSource(path, ',', encoding.Nop, true)
	require.NoError(t, err)
	defer src.Close()

	var secondOffset uint64
	err = src.Scan(func(offset uint64, row []string) (bool, error) {
		if row[0] == "3" {
			secondOffset = offset
		}
		return false, nil
	})
	require.NoError(t, err)

	row, err := src.ReadAt(secondOffset)
	require.NoError(t, err)
	require.Equal(t, []string{"3", "4"}, row)
}

func TestSource_IndexRowReader_PullsEveryRow(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,4\n5,6\n")
	src, err := OpenSource(path, ',', encoding.Nop, true)
	require.NoError(t, err)
	defer src.Close()

	next := src.IndexRowReader()
	var rows [][]string
	for {
		_, row, ok, err := next()
		require.NoError(t, err)
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	require.Equal(t, [][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}}, rows)
}

func TestSource_SchemaRowReader_DropsOffset(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,4\n")
	src, err := OpenSource(path, ',', encoding.Nop, true)
	require.NoError(t, err)
	defer src.Close()

	next := src.SchemaRowReader()
	var rows [][]string
	for {
		row, ok, err := next()
		require.NoError(t, err)
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	require.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rows)
}

func TestOpenSeekable_RejectsStdinSentinel(t *testing.T) {
	_, err := OpenSeekable("-")
	require.Error(t, err)
}

// newNonSeekableSource builds a Source over a reader that is
// deliberately not an io.Seeker, standing in for stdin.
func newNonSeekableSource(t *testing.T, contents string, hasHeaders bool) *Source {
	t.Helper()
	r := io.NopCloser(strings.NewReader(contents))
	s := &Source{r: r, delimiter: ',', encoding: encoding.Nop, hasHeaders: hasHeaders}
	if hasHeaders {
		cr := NewCSVReader(r, ',', 0)
		raw, err := cr.Read()
		require.NoError(t, err)
		s.headers = raw
	}
	return s
}

func TestSource_Scan_WorksOverNonSeekableReader(t *testing.T) {
	src := newNonSeekableSource(t, "a,b\n1,2\n3,4\n", true)
	defer src.Close()

	var rows [][]string
	err := src.Scan(func(_ uint64, row []string) (bool, error) {
		rows = append(rows, row)
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rows)
}

func TestSource_ReadAt_RejectsNonSeekableReader(t *testing.T) {
	src := newNonSeekableSource(t, "a,b\n1,2\n", true)
	defer src.Close()

	_, err := src.ReadAt(0)
	require.Error(t, err)
}
