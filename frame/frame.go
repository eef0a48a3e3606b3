// Package frame provides rectangular annotation tables and the facet
// normalization used to build them from raw BIOM metadata.
//
// A Frame pairs an ordered list of row identifiers with a fixed column set
// and one typed Value per cell. Facet models the three shapes BIOM metadata
// arrives in (absent, per-identifier records, already rectangular) and
// normalizes all of them to a Frame.
package frame

import (
	"fmt"
)

// Frame is a rectangular annotation table.
//
// Rows are addressed by position and optionally carry identifiers; columns
// are addressed by position or name. Column order is significant and is
// preserved exactly through normalization and pass-through.
type Frame struct {
	ids   []string // nil when row identifiers are unknown
	cols  []string
	cells [][]Value // row-major, nrows x len(cols)
	nrows int
}

// New creates a Frame from row identifiers, column names and row-major cells.
//
// ids may be nil when identifiers are unknown; otherwise len(ids) must match
// len(cells). Every row must have exactly len(cols) cells.
func New(ids, cols []string, cells [][]Value) (*Frame, error) {
	if ids != nil && len(ids) != len(cells) {
		return nil, fmt.Errorf("frame: %d row identifiers for %d rows", len(ids), len(cells))
	}
	for i, row := range cells {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("frame: row %d has %d cells, want %d", i, len(row), len(cols))
		}
	}
	return &Frame{ids: ids, cols: cols, cells: cells, nrows: len(cells)}, nil
}

// Empty creates a Frame with n rows and zero columns.
//
// ids may be nil; otherwise len(ids) must equal n.
func Empty(ids []string, n int) (*Frame, error) {
	if ids != nil && len(ids) != n {
		return nil, fmt.Errorf("frame: %d row identifiers for %d rows", len(ids), n)
	}
	cells := make([][]Value, n)
	for i := range cells {
		cells[i] = []Value{}
	}
	return &Frame{ids: ids, cols: []string{}, cells: cells, nrows: n}, nil
}

// NRows returns the number of rows.
func (f *Frame) NRows() int { return f.nrows }

// NCols returns the number of columns.
func (f *Frame) NCols() int { return len(f.cols) }

// IDs returns the row identifiers, or nil when unknown.
// The returned slice is shared; callers must not modify it.
func (f *Frame) IDs() []string { return f.ids }

// Columns returns the column names in order.
// The returned slice is shared; callers must not modify it.
func (f *Frame) Columns() []string { return f.cols }

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row i, column j.
func (f *Frame) Cell(i, j int) Value { return f.cells[i][j] }

// SetCell replaces the value at row i, column j.
func (f *Frame) SetCell(i, j int, v Value) { f.cells[i][j] = v }

// Row returns a copy of row i.
func (f *Frame) Row(i int) []Value {
	out := make([]Value, len(f.cells[i]))
	copy(out, f.cells[i])
	return out
}

// Get returns the value at row i in the named column.
func (f *Frame) Get(i int, col string) (Value, bool) {
	j := f.ColumnIndex(col)
	if j < 0 || i < 0 || i >= f.nrows {
		return Value{}, false
	}
	return f.cells[i][j], true
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	var ids []string
	if f.ids != nil {
		ids = make([]string, len(f.ids))
		copy(ids, f.ids)
	}
	cols := make([]string, len(f.cols))
	copy(cols, f.cols)
	cells := make([][]Value, len(f.cells))
	for i, row := range f.cells {
		cells[i] = make([]Value, len(row))
		copy(cells[i], row)
	}
	return &Frame{ids: ids, cols: cols, cells: cells, nrows: f.nrows}
}

// Equal reports whether two frames have identical identifiers, column order
// and cell values.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.nrows != other.nrows || len(f.cols) != len(other.cols) {
		return false
	}
	if (f.ids == nil) != (other.ids == nil) {
		return false
	}
	for i := range f.ids {
		if f.ids[i] != other.ids[i] {
			return false
		}
	}
	for j := range f.cols {
		if f.cols[j] != other.cols[j] {
			return false
		}
	}
	for i := range f.cells {
		for j := range f.cells[i] {
			if f.cells[i][j] != other.cells[i][j] {
				return false
			}
		}
	}
	return true
}
