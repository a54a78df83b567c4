package dataio

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
)

func TestResolveEncoding_EmptyDefaultsToNop(t *testing.T) {
	enc, err := ResolveEncoding("")
	require.NoError(t, err)
	require.Equal(t, encoding.Nop, enc)
}

func TestResolveEncoding_KnownLabel(t *testing.T) {
	enc, err := ResolveEncoding("utf-8")
	require.NoError(t, err)
	require.NotNil(t, enc)
}

func TestResolveEncoding_UnknownLabel(t *testing.T) {
	_, err := ResolveEncoding("not-a-real-encoding")
	require.Error(t, err)
}

func TestDecodeRecord_NopPassesThrough(t *testing.T) {
	record := []string{"a", "b"}
	out, err := DecodeRecord(record, encoding.Nop)
	require.NoError(t, err)
	require.Equal(t, record, out)
}
