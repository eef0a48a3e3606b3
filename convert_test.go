package biomtab_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/biomtab"
	"github.com/hupe1980/biomtab/biom"
	"github.com/hupe1980/biomtab/frame"
)

func demoTable(t *testing.T) *biom.Table {
	t.Helper()
	return &biom.Table{
		ID:     "demo",
		Counts: mat.NewDense(2, 3, []float64{4, 0, 2, 0, 7, 1}),
		RowIDs: []string{"f1", "f2"},
		ColIDs: []string{"s1", "s2", "s3"},
	}
}

func TestConvertAbsentFacets(t *testing.T) {
	exp, err := biomtab.Convert(demoTable(t))
	require.NoError(t, err)

	features, samples := exp.Dims()
	assert.Equal(t, 2, features)
	assert.Equal(t, 3, samples)

	// Absent metadata yields empty frames with one row per axis entry.
	assert.Equal(t, 2, exp.RowData.NRows())
	assert.Equal(t, 0, exp.RowData.NCols())
	assert.Equal(t, 3, exp.ColData.NRows())
	assert.Equal(t, 0, exp.ColData.NCols())

	assert.Equal(t, []string{"f1", "f2"}, exp.RowData.IDs())
	assert.Equal(t, []string{"s1", "s2", "s3"}, exp.ColData.IDs())
	assert.Equal(t, []string{"f1", "f2"}, exp.RowNames)
}

func TestConvertHeterogeneousRecords(t *testing.T) {
	tbl := &biom.Table{
		Counts: mat.NewDense(1, 2, []float64{1, 2}),
		RowIDs: []string{"f1"},
		ColIDs: []string{"s1", "s2"},
		ColMetadata: frame.RecordsFacet([]frame.Record{
			{ID: "s1", Fields: []frame.Field{
				{Name: "Kingdom", Value: frame.String("Bacteria")},
				{Name: "Phylum", Value: frame.String("Firmicutes")},
			}},
			{ID: "s2", Fields: []frame.Field{
				{Name: "Kingdom", Value: frame.String("Archaea")},
			}},
		}),
	}

	exp, err := biomtab.Convert(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"Kingdom", "Phylum"}, exp.ColData.Columns())
	assert.Equal(t, []frame.Value{frame.String("Archaea"), frame.Null()}, exp.ColData.Row(1))
}

func TestConvertTaxaPrefixRemoval(t *testing.T) {
	makeTable := func() *biom.Table {
		return &biom.Table{
			Counts: mat.NewDense(3, 1, []float64{1, 2, 3}),
			RowIDs: []string{"f1", "f2", "f3"},
			ColIDs: []string{"s1"},
			RowMetadata: frame.RecordsFacet([]frame.Record{
				{ID: "f1", Fields: []frame.Field{{Name: "taxonomy1", Value: frame.String("k__Bacteria")}}},
				{ID: "f2", Fields: []frame.Field{{Name: "taxonomy1", Value: frame.String("sk__Eukaryota")}}},
				{ID: "f3", Fields: []frame.Field{{Name: "taxonomy1", Value: frame.String("Unclassified")}}},
			}),
		}
	}

	t.Run("Enabled", func(t *testing.T) {
		exp, err := biomtab.Convert(makeTable(), biomtab.WithTaxaPrefixRemoval())
		require.NoError(t, err)

		assert.Equal(t, frame.String("Bacteria"), exp.RowData.Cell(0, 0))
		assert.Equal(t, frame.String("Eukaryota"), exp.RowData.Cell(1, 0))
		assert.Equal(t, frame.String("Unclassified"), exp.RowData.Cell(2, 0))
	})

	t.Run("Disabled", func(t *testing.T) {
		exp, err := biomtab.Convert(makeTable())
		require.NoError(t, err)

		assert.Equal(t, frame.String("k__Bacteria"), exp.RowData.Cell(0, 0))
		assert.Equal(t, frame.String("sk__Eukaryota"), exp.RowData.Cell(1, 0))
	})

	t.Run("Pass-through table is not mutated", func(t *testing.T) {
		rowTable, err := frame.New(
			[]string{"f1"},
			[]string{"taxonomy1"},
			[][]frame.Value{{frame.String("k__Bacteria")}},
		)
		require.NoError(t, err)

		tbl := &biom.Table{
			Counts:      mat.NewDense(1, 1, []float64{1}),
			RowIDs:      []string{"f1"},
			ColIDs:      []string{"s1"},
			RowMetadata: frame.TableFacet(rowTable),
		}

		exp, err := biomtab.Convert(tbl, biomtab.WithTaxaPrefixRemoval())
		require.NoError(t, err)

		assert.Equal(t, frame.String("Bacteria"), exp.RowData.Cell(0, 0))
		assert.Equal(t, frame.String("k__Bacteria"), rowTable.Cell(0, 0))
	})
}

func TestConvertTablePassThrough(t *testing.T) {
	colTable, err := frame.New(
		[]string{"s1", "s2"},
		[]string{"Depth", "Site"},
		[][]frame.Value{
			{frame.Int(10), frame.String("gut")},
			{frame.Int(2), frame.String("skin")},
		},
	)
	require.NoError(t, err)

	tbl := &biom.Table{
		Counts:      mat.NewDense(1, 2, []float64{1, 2}),
		RowIDs:      []string{"f1"},
		ColIDs:      []string{"s1", "s2"},
		ColMetadata: frame.TableFacet(colTable),
	}

	exp, err := biomtab.Convert(tbl)
	require.NoError(t, err)

	// Rectangular input survives untouched, including column order.
	assert.True(t, colTable.Equal(exp.ColData))
	assert.Equal(t, []string{"Depth", "Site"}, exp.ColData.Columns())
}

func TestConvertIdempotent(t *testing.T) {
	tbl := &biom.Table{
		Counts: mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		RowIDs: []string{"f1", "f2"},
		ColIDs: []string{"s1", "s2"},
		RowMetadata: frame.RecordsFacet([]frame.Record{
			{ID: "f1", Fields: []frame.Field{{Name: "taxonomy1", Value: frame.String("k__Bacteria")}}},
		}),
	}

	a, err := biomtab.Convert(tbl, biomtab.WithTaxaPrefixRemoval())
	require.NoError(t, err)
	b, err := biomtab.Convert(tbl, biomtab.WithTaxaPrefixRemoval())
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.Counts, b.Counts))
	assert.True(t, a.RowData.Equal(b.RowData))
	assert.True(t, a.ColData.Equal(b.ColData))
	assert.Equal(t, a.RowNames, b.RowNames)
	assert.Equal(t, a.ColNames, b.ColNames)
}

func TestConvertInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		obj  any
	}{
		{"plain matrix", mat.NewDense(2, 2, nil)},
		{"nil", nil},
		{"typed nil table", (*biom.Table)(nil)},
		{"string", "table.biom"},
		{"table without counts", &biom.Table{ID: "empty"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := biomtab.Convert(tc.obj)
			require.ErrorIs(t, err, biomtab.ErrInvalidInput)
		})
	}

	t.Run("Identifier count mismatch", func(t *testing.T) {
		_, err := biomtab.Convert(&biom.Table{
			Counts: mat.NewDense(2, 2, nil),
			RowIDs: []string{"f1"},
		})
		require.ErrorIs(t, err, biomtab.ErrInvalidInput)
	})
}

func TestConvertWarnsOnUnnamedAxes(t *testing.T) {
	newLogger := func(buf *bytes.Buffer) *biomtab.Logger {
		return biomtab.NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	t.Run("Unnamed axes warn", func(t *testing.T) {
		var buf bytes.Buffer
		exp, err := biomtab.Convert(
			&biom.Table{Counts: mat.NewDense(2, 2, nil)},
			biomtab.WithLogger(newLogger(&buf)),
		)
		require.NoError(t, err)
		require.NotNil(t, exp)

		assert.Contains(t, buf.String(), "unnamed axes")
		assert.Nil(t, exp.RowNames)
		assert.Nil(t, exp.ColNames)
	})

	t.Run("Named axes stay quiet", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := biomtab.Convert(demoTable(t), biomtab.WithLogger(newLogger(&buf)))
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestMakeExperimentFromBiomAlias(t *testing.T) {
	exp, err := biomtab.MakeExperimentFromBiom(demoTable(t))
	require.NoError(t, err)

	want, err := biomtab.Convert(demoTable(t))
	require.NoError(t, err)

	assert.True(t, mat.Equal(want.Counts, exp.Counts))
	assert.True(t, want.RowData.Equal(exp.RowData))
	assert.True(t, want.ColData.Equal(exp.ColData))
}

func TestExperimentLookups(t *testing.T) {
	exp, err := biomtab.Convert(demoTable(t))
	require.NoError(t, err)

	assert.Equal(t, 1, exp.FeatureIndex("f2"))
	assert.Equal(t, -1, exp.FeatureIndex("f9"))
	assert.Equal(t, 2, exp.SampleIndex("s3"))

	v, ok := exp.Abundance("f2", "s2")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = exp.Abundance("f2", "s9")
	assert.False(t, ok)
}
