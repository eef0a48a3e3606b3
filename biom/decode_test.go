package biom_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/biomtab/biom"
	_ "github.com/hupe1980/biomtab/biom/biomjson"
)

const minimalDoc = `{
	"id": "t1",
	"format": "Biological Observation Matrix 1.0.0",
	"format_url": "http://biom-format.org",
	"type": "OTU table",
	"generated_by": "biomtab-test",
	"date": "2024-05-01T00:00:00",
	"matrix_type": "sparse",
	"matrix_element_type": "int",
	"shape": [2, 3],
	"data": [[0, 0, 5], [1, 2, 1]],
	"rows": [{"id": "f1", "metadata": null}, {"id": "f2", "metadata": null}],
	"columns": [{"id": "s1", "metadata": null}, {"id": "s2", "metadata": null}, {"id": "s3", "metadata": null}]
}`

func TestSniff(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		want   string
	}{
		{"hdf5 magic", []byte("\x89HDF\r\n\x1a\nrest"), biom.FormatHDF5},
		{"json object", []byte(`{"id": null}`), biom.FormatJSON},
		{"json after whitespace", []byte("\n\t {\"id\""), biom.FormatJSON},
		{"tsv", []byte("#OTU ID\ts1\ts2"), ""},
		{"empty", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, biom.Sniff(tc.prefix))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tbl, err := biom.Decode(strings.NewReader(minimalDoc))
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []string{"f1", "f2"}, tbl.RowIDs)
	assert.Equal(t, 5.0, tbl.Counts.At(0, 0))
}

func TestDecodeGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(minimalDoc))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	tbl, err := biom.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "t1", tbl.ID)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := biom.Decode(strings.NewReader("#OTU ID\ts1\n"))
	require.ErrorIs(t, err, biom.ErrUnknownFormat)
}

func TestDecodeDecoderUnavailable(t *testing.T) {
	// No HDF5 decoder ships in-tree, so BIOM 2.x input must fail with a
	// structured registry miss, not a parse error.
	_, err := biom.Decode(strings.NewReader("\x89HDF\r\n\x1a\npayload"))

	var unavailable *biom.ErrDecoderUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, biom.FormatHDF5, unavailable.Format)
	assert.True(t, errors.Is(err, biom.ErrNoDecoder))
}

func TestDecoderFor(t *testing.T) {
	_, ok := biom.DecoderFor(biom.FormatJSON)
	assert.True(t, ok)

	_, ok = biom.DecoderFor(biom.FormatHDF5)
	assert.False(t, ok)
}
