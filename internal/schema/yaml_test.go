package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csveng/internal/value"
)

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	s := Schema{
		SchemaVersion: CurrentSchemaVersion,
		HasHeaders:    true,
		Columns: []Column{
			NewColumn("id", value.Type{Kind: value.KindInteger}),
			{
				Name:     "amount",
				Datatype: value.Type{Kind: value.KindDecimal, Precision: 10, Scale: 2},
				Rename:   "total",
				Replacements: []Replacement{{From: "NA", To: "0"}},
			},
		},
	}

	data, err := Marshal(s)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, s.SchemaVersion, got.SchemaVersion)
	assert.Equal(t, s.HasHeaders, got.HasHeaders)
	require.Len(t, got.Columns, 2)
	assert.Equal(t, value.KindInteger, got.Columns[0].Datatype.Kind)
	assert.Equal(t, value.KindDecimal, got.Columns[1].Datatype.Kind)
	assert.Equal(t, 10, got.Columns[1].Datatype.Precision)
	assert.Equal(t, "total", got.Columns[1].Rename)
	assert.Equal(t, "NA", got.Columns[1].Replacements[0].From)
}

func TestUnmarshal_UnknownDatatypeRejected(t *testing.T) {
	doc := []byte("schema_version: \"1\"\nhas_headers: true\ncolumns:\n  - name: x\n    datatype: bogus\n")
	_, err := Unmarshal(doc)
	assert.Error(t, err)
}
