package dataio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordWriter_QuotesEveryField(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRecordWriter(&buf, ',')
	require.NoError(t, rw.WriteRecord([]string{"1", "hello", "a,b"}))
	require.NoError(t, rw.Flush())
	require.Equal(t, "\"1\",\"hello\",\"a,b\"\n", buf.String())
}

func TestRecordWriter_EscapesEmbeddedQuotes(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRecordWriter(&buf, ',')
	require.NoError(t, rw.WriteRecord([]string{`say "hi"`}))
	require.NoError(t, rw.Flush())
	require.Equal(t, "\"say \"\"hi\"\"\"\n", buf.String())
}

func TestRecordWriter_CustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRecordWriter(&buf, '\t')
	require.NoError(t, rw.WriteRecord([]string{"a", "b"}))
	require.NoError(t, rw.Flush())
	require.Equal(t, "\"a\"\t\"b\"\n", buf.String())
}

type nopCloserBuf struct {
	*bytes.Buffer
}

func (nopCloserBuf) Close() error { return nil }

func TestEncodingWriter_NopPassesThroughBytes(t *testing.T) {
	var buf bytes.Buffer
	w := EncodingWriter(nopCloserBuf{&buf}, nil)
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, "hello", buf.String())
}
