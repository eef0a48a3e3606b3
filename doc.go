// Package biomtab converts BIOM abundance data into an Experiment: a dense
// feature x sample counts matrix paired with rectangular row (feature) and
// column (sample) annotation frames, aligned by identifier.
//
// # Quick Start
//
// From a decoded table:
//
//	exp, err := biomtab.Convert(table)
//	exp, err := biomtab.Convert(table, biomtab.WithTaxaPrefixRemoval())
//
// Straight from a file (the JSON decoder registers itself on import):
//
//	import _ "github.com/hupe1980/biomtab/biom/biomjson"
//
//	exp, err := biomtab.FromFile("table.biom")
//
// From object storage:
//
//	store := minio.NewStore(client, "datasets", "biom/")
//	exp, err := biomtab.FromStore(ctx, store, "stool.biom")
//
// # Metadata normalization
//
// BIOM metadata facets arrive in one of three shapes: absent, a mapping from
// identifier to a variable-length record, or an already rectangular table.
// Conversion normalizes all three to a frame with exactly one row per counts
// axis entry. Record facets are merged by field name: the column set is the
// union of all field names, and entries lacking a field get Null, never an
// error. Rectangular facets pass through unchanged.
//
// # Decoders
//
// Format decoders are registered, not linked: converting an HDF5 (BIOM 2.x)
// file without an HDF5 decoder on the registry fails with a structured
// *biom.ErrDecoderUnavailable naming the format, checked on every call.
package biomtab
