// Package biomjson decodes BIOM 1.0 (JSON) documents.
//
// Importing the package registers the decoder with the biom registry:
//
//	import _ "github.com/hupe1980/biomtab/biom/biomjson"
//
// The format is specified at https://biom-format.org/documentation/format_versions/biom-1.0.html:
// a single JSON object carrying the counts matrix inline, either as
// [row, column, value] triples ("sparse") or as row-major lists ("dense"),
// plus per-axis entries with an id and an optional metadata object.
package biomjson

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/biomtab/biom"
	"github.com/hupe1980/biomtab/codec"
	"github.com/hupe1980/biomtab/frame"
)

func init() {
	biom.RegisterDecoder(Decoder{})
}

// Decoder decodes BIOM 1.0 JSON documents.
//
// The zero value uses codec.Default. The Codec field exists so callers can
// pin the portable stdlib codec instead:
//
//	biom.RegisterDecoder(biomjson.Decoder{Codec: codec.JSON{}})
type Decoder struct {
	Codec codec.Codec
}

// Format returns the container format handled by the decoder.
func (Decoder) Format() string { return biom.FormatJSON }

// document mirrors the BIOM 1.0 wire format.
type document struct {
	ID                string      `json:"id"`
	Format            string      `json:"format"`
	FormatURL         string      `json:"format_url"`
	Type              string      `json:"type"`
	GeneratedBy       string      `json:"generated_by"`
	Date              string      `json:"date"`
	MatrixType        string      `json:"matrix_type"`
	MatrixElementType string      `json:"matrix_element_type"`
	Shape             []int       `json:"shape"`
	Data              [][]float64 `json:"data"`
	Rows              []axisEntry `json:"rows"`
	Columns           []axisEntry `json:"columns"`
}

type axisEntry struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata"`
}

// Decode reads a complete BIOM 1.0 document from r.
func (d Decoder) Decode(r io.Reader) (*biom.Table, error) {
	c := d.Codec
	if c == nil {
		c = codec.Default
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("biomjson: read document: %w", err)
	}
	var doc document
	if err := c.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("biomjson: parse document: %w", err)
	}

	if len(doc.Shape) != 2 {
		return nil, fmt.Errorf("biomjson: shape has %d entries, want 2", len(doc.Shape))
	}
	nr, nc := doc.Shape[0], doc.Shape[1]
	if nr <= 0 || nc <= 0 {
		return nil, fmt.Errorf("biomjson: non-positive shape %dx%d", nr, nc)
	}
	if len(doc.Rows) != nr {
		return nil, fmt.Errorf("biomjson: %d row entries for shape %dx%d", len(doc.Rows), nr, nc)
	}
	if len(doc.Columns) != nc {
		return nil, fmt.Errorf("biomjson: %d column entries for shape %dx%d", len(doc.Columns), nr, nc)
	}

	counts, err := decodeCounts(&doc, nr, nc)
	if err != nil {
		return nil, err
	}

	rowIDs, rowMeta, err := decodeAxis(doc.Rows)
	if err != nil {
		return nil, fmt.Errorf("biomjson: rows: %w", err)
	}
	colIDs, colMeta, err := decodeAxis(doc.Columns)
	if err != nil {
		return nil, fmt.Errorf("biomjson: columns: %w", err)
	}

	return &biom.Table{
		ID:          doc.ID,
		Format:      doc.Format,
		FormatURL:   doc.FormatURL,
		Type:        doc.Type,
		GeneratedBy: doc.GeneratedBy,
		Date:        doc.Date,
		Counts:      counts,
		RowIDs:      rowIDs,
		ColIDs:      colIDs,
		RowMetadata: rowMeta,
		ColMetadata: colMeta,
	}, nil
}

func decodeCounts(doc *document, nr, nc int) (*mat.Dense, error) {
	m := mat.NewDense(nr, nc, nil)
	switch doc.MatrixType {
	case "sparse":
		for i, triple := range doc.Data {
			if len(triple) != 3 {
				return nil, fmt.Errorf("biomjson: sparse entry %d has %d values, want 3", i, len(triple))
			}
			r, c := int(triple[0]), int(triple[1])
			if float64(r) != triple[0] || float64(c) != triple[1] || r < 0 || r >= nr || c < 0 || c >= nc {
				return nil, fmt.Errorf("biomjson: sparse entry %d index (%g, %g) outside %dx%d", i, triple[0], triple[1], nr, nc)
			}
			m.Set(r, c, triple[2])
		}
	case "dense":
		if len(doc.Data) != nr {
			return nil, fmt.Errorf("biomjson: dense data has %d rows, want %d", len(doc.Data), nr)
		}
		for i, row := range doc.Data {
			if len(row) != nc {
				return nil, fmt.Errorf("biomjson: dense row %d has %d values, want %d", i, len(row), nc)
			}
			m.SetRow(i, row)
		}
	default:
		return nil, fmt.Errorf("biomjson: unsupported matrix_type %q", doc.MatrixType)
	}
	return m, nil
}

// decodeAxis extracts identifiers and the metadata facet for one axis.
// The facet is absent when no entry carries metadata.
func decodeAxis(entries []axisEntry) ([]string, frame.Facet, error) {
	ids := make([]string, len(entries))
	var records []frame.Record
	for i, e := range entries {
		ids[i] = e.ID
		if e.Metadata == nil {
			continue
		}
		fields, err := metadataFields(e.Metadata)
		if err != nil {
			return nil, frame.Facet{}, fmt.Errorf("entry %q: %w", e.ID, err)
		}
		records = append(records, frame.Record{ID: e.ID, Fields: fields})
	}
	if records == nil {
		return ids, frame.EmptyFacet(), nil
	}
	return ids, frame.RecordsFacet(records), nil
}

// metadataFields flattens one metadata object into ordered fields.
//
// JSON objects are unordered, so keys are visited in sorted order for
// deterministic column layout. List values (the common taxonomy shape,
// possibly of different lengths per entry) expand to one field per element,
// named key1..keyN, which is what makes record lengths heterogeneous.
func metadataFields(md map[string]any) ([]frame.Field, error) {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields []frame.Field
	for _, k := range keys {
		switch v := md[k].(type) {
		case []any:
			for i, elem := range v {
				val, err := frame.FromAny(elem)
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", k, err)
				}
				fields = append(fields, frame.Field{Name: k + strconv.Itoa(i+1), Value: val})
			}
		default:
			val, err := frame.FromAny(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			fields = append(fields, frame.Field{Name: k, Value: val})
		}
	}
	return fields, nil
}
