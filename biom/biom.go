// Package biom models decoded BIOM abundance tables and the registry of
// format decoders that produce them.
//
// The BIOM ("Biological Observation Matrix") format stores a feature-by-
// sample counts matrix plus optional per-axis metadata. Version 1.0 files
// are JSON; version 2.x files are HDF5 containers. This package defines the
// in-memory shape shared by all decoders; the decoders themselves live in
// subpackages and register here, so an unavailable format is a structured
// error rather than a compile-time dependency.
package biom

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/biomtab/frame"
)

// Table is a decoded BIOM table.
//
// Counts is dense with features (observations) as rows and samples as
// columns. RowIDs/ColIDs carry the axis identifiers when the source file
// names them. The metadata facets default to absent.
type Table struct {
	// Identity fields from the file header.
	ID          string
	Format      string
	FormatURL   string
	Type        string
	GeneratedBy string
	Date        string

	// Counts is the feature x sample abundance matrix.
	Counts *mat.Dense

	// RowIDs and ColIDs name the matrix axes; either may be nil.
	RowIDs []string
	ColIDs []string

	// RowMetadata annotates features, ColMetadata annotates samples.
	RowMetadata frame.Facet
	ColMetadata frame.Facet
}

// Shape returns the counts dimensions (features, samples).
// A table without counts has shape 0, 0.
func (t *Table) Shape() (rows, cols int) {
	if t == nil || t.Counts == nil {
		return 0, 0
	}
	return t.Counts.Dims()
}
