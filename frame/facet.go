package frame

import (
	"fmt"
)

// FacetKind identifies the shape of a metadata facet.
type FacetKind uint8

const (
	// FacetEmpty marks an absent facet.
	FacetEmpty FacetKind = iota
	// FacetRecords marks a per-identifier record mapping.
	FacetRecords
	// FacetTable marks an already rectangular facet.
	FacetTable
)

// String returns the string representation of the FacetKind.
func (k FacetKind) String() string {
	switch k {
	case FacetEmpty:
		return "Empty"
	case FacetRecords:
		return "Records"
	case FacetTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Field is one named value inside a metadata record.
type Field struct {
	Name  string
	Value Value
}

// Record is the metadata attached to a single row or column identifier.
// Field order is significant: it drives the column order of the
// normalized frame.
type Record struct {
	ID     string
	Fields []Field
}

// Facet is a per-axis metadata source in one of three shapes: absent,
// per-identifier records with possibly heterogeneous field sets, or an
// already rectangular table.
//
// The zero Facet is the absent facet.
type Facet struct {
	kind    FacetKind
	records []Record
	table   *Frame
}

// EmptyFacet returns the absent facet.
func EmptyFacet() Facet { return Facet{kind: FacetEmpty} }

// RecordsFacet returns a facet backed by per-identifier records.
func RecordsFacet(records []Record) Facet {
	return Facet{kind: FacetRecords, records: records}
}

// TableFacet returns a facet backed by an already rectangular frame.
func TableFacet(f *Frame) Facet {
	if f == nil {
		return EmptyFacet()
	}
	return Facet{kind: FacetTable, table: f}
}

// Kind returns the shape of the facet.
func (f Facet) Kind() FacetKind { return f.kind }

// Records returns the backing records for a FacetRecords facet.
func (f Facet) Records() []Record { return f.records }

// Normalize produces a rectangular Frame with exactly one row per entry of
// the corresponding counts axis.
//
// ids carries the axis identifiers and may be nil when the counts matrix has
// no names on that axis; n is the axis length and is authoritative.
//
//   - An absent facet yields an n-row, zero-column frame.
//   - A record facet is merged by field name: the column set is the union of
//     all field names in first-appearance order, and each row is filled by
//     name lookup, Null where a record lacks the field. Identifiers absent
//     from the axis are dropped; axis identifiers without a record get an
//     all-Null row. When ids is nil, rows follow record order and the record
//     identifiers become the frame identifiers.
//   - A table facet is passed through unchanged.
func (f Facet) Normalize(ids []string, n int) (*Frame, error) {
	if ids != nil && len(ids) != n {
		return nil, fmt.Errorf("frame: %d axis identifiers for axis length %d", len(ids), n)
	}
	switch f.kind {
	case FacetEmpty:
		return Empty(ids, n)
	case FacetRecords:
		return normalizeRecords(f.records, ids, n)
	case FacetTable:
		return f.table, nil
	default:
		return nil, fmt.Errorf("frame: unknown facet kind %d", f.kind)
	}
}

func normalizeRecords(records []Record, ids []string, n int) (*Frame, error) {
	// Union of field names, in the order they first appear scanning the
	// records in input order. This decides the column order.
	var cols []string
	seen := make(map[string]int)
	for _, rec := range records {
		for _, fld := range rec.Fields {
			if _, ok := seen[fld.Name]; !ok {
				seen[fld.Name] = len(cols)
				cols = append(cols, fld.Name)
			}
		}
	}
	if cols == nil {
		cols = []string{}
	}

	byID := make(map[string]*Record, len(records))
	for i := range records {
		rec := &records[i]
		if _, ok := byID[rec.ID]; !ok {
			byID[rec.ID] = rec
		}
	}

	if ids == nil {
		if len(records) != n {
			return nil, fmt.Errorf("frame: %d metadata records for unnamed axis of length %d", len(records), n)
		}
		ids = make([]string, n)
		for i := range records {
			ids[i] = records[i].ID
		}
		cells := make([][]Value, n)
		for i := range records {
			cells[i] = recordRow(&records[i], cols, seen)
		}
		return &Frame{ids: ids, cols: cols, cells: cells, nrows: n}, nil
	}

	cells := make([][]Value, n)
	for i, id := range ids {
		if rec, ok := byID[id]; ok {
			cells[i] = recordRow(rec, cols, seen)
			continue
		}
		row := make([]Value, len(cols))
		for j := range row {
			row[j] = Null()
		}
		cells[i] = row
	}
	return &Frame{ids: ids, cols: cols, cells: cells, nrows: n}, nil
}

func recordRow(rec *Record, cols []string, colIndex map[string]int) []Value {
	row := make([]Value, len(cols))
	for j := range row {
		row[j] = Null()
	}
	for _, fld := range rec.Fields {
		row[colIndex[fld.Name]] = fld.Value
	}
	return row
}
