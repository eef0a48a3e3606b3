package biomtab

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/biomtab/biom"
	"github.com/hupe1980/biomtab/blobstore"
	"github.com/hupe1980/biomtab/frame"
)

// Convert builds an Experiment from a decoded BIOM table.
//
// obj must be a *biom.Table with a counts matrix; anything else fails with
// ErrInvalidInput. Each metadata facet is normalized independently to a
// rectangular frame aligned with its counts axis, synthesizing an empty
// frame when the facet is absent. With WithTaxaPrefixRemoval, leading
// taxonomic rank prefixes are stripped from the feature frame.
//
// A table whose counts axes carry no identifiers still converts; the missing
// names are reported through the configured logger at Warn level and the
// Experiment is returned with nil RowNames or ColNames.
func Convert(obj any, opts ...Option) (*Experiment, error) {
	o := applyOptions(opts)
	return convert(context.Background(), obj, &o)
}

// MakeExperimentFromBiom builds an Experiment from a decoded BIOM table.
//
// Deprecated: Use Convert. This forwarding wrapper is kept for callers of
// the old name only.
func MakeExperimentFromBiom(obj any, opts ...Option) (*Experiment, error) {
	return Convert(obj, opts...)
}

func convert(ctx context.Context, obj any, o *options) (*Experiment, error) {
	t, ok := obj.(*biom.Table)
	if !ok || t == nil {
		err := fmt.Errorf("%w: got %T", ErrInvalidInput, obj)
		o.logger.LogConvert(ctx, 0, 0, err)
		return nil, err
	}
	if t.Counts == nil {
		err := fmt.Errorf("%w: table has no counts matrix", ErrInvalidInput)
		o.logger.LogConvert(ctx, 0, 0, err)
		return nil, err
	}
	nr, nc := t.Counts.Dims()
	if t.RowIDs != nil && len(t.RowIDs) != nr {
		return nil, fmt.Errorf("%w: %d row identifiers for %d features", ErrInvalidInput, len(t.RowIDs), nr)
	}
	if t.ColIDs != nil && len(t.ColIDs) != nc {
		return nil, fmt.Errorf("%w: %d column identifiers for %d samples", ErrInvalidInput, len(t.ColIDs), nc)
	}

	rowData, err := t.RowMetadata.Normalize(t.RowIDs, nr)
	if err != nil {
		return nil, fmt.Errorf("normalize feature metadata: %w", err)
	}
	colData, err := t.ColMetadata.Normalize(t.ColIDs, nc)
	if err != nil {
		return nil, fmt.Errorf("normalize sample metadata: %w", err)
	}

	if o.stripTaxa && rowData.NCols() > 0 {
		// Pass-through tables are owned by the input; strip a copy.
		if t.RowMetadata.Kind() == frame.FacetTable {
			rowData = rowData.Clone()
		}
		frame.StripRankPrefixes(rowData)
	}

	exp := &Experiment{
		Counts:   t.Counts,
		RowData:  rowData,
		ColData:  colData,
		RowNames: t.RowIDs,
		ColNames: t.ColIDs,
	}
	if exp.RowNames == nil || exp.ColNames == nil {
		o.logger.WarnContext(ctx, "counts matrix has unnamed axes; set feature and sample identifiers explicitly",
			"has_feature_names", exp.RowNames != nil,
			"has_sample_names", exp.ColNames != nil,
		)
	}
	o.logger.LogConvert(ctx, nr, nc, nil)
	return exp, nil
}

// FromFile decodes a BIOM file and converts it to an Experiment.
//
// The container format (JSON or HDF5, optionally gzip-compressed) is sniffed
// from the file content and resolved against the decoder registry on every
// call; a recognized format without a registered decoder fails with
// *biom.ErrDecoderUnavailable. Decoder errors are passed through unchanged
// and never retried.
func FromFile(path string, opts ...Option) (*Experiment, error) {
	o := applyOptions(opts)
	return fromFile(context.Background(), path, &o)
}

func fromFile(ctx context.Context, path string, o *options) (*Experiment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open biom file: %w", err)
	}
	defer f.Close()
	return fromReader(ctx, f, path, o)
}

// FromStore decodes the named blob from a blob store and converts it to an
// Experiment. ctx governs the blob fetch; decoding and conversion are
// synchronous.
func FromStore(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Experiment, error) {
	o := applyOptions(opts)
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open biom blob %q: %w", name, err)
	}
	defer rc.Close()
	return fromReader(ctx, rc, name, &o)
}

func fromReader(ctx context.Context, r io.Reader, source string, o *options) (*Experiment, error) {
	t, err := biom.Decode(r)
	o.logger.LogDecode(ctx, source, err)
	if err != nil {
		return nil, err
	}
	return convert(ctx, t, o)
}

// ConvertAll converts many BIOM files, decoding at most WithConcurrency
// files in parallel. The result slice is ordered like paths. The first
// failure cancels the remaining work and is returned wrapped with the
// offending path.
func ConvertAll(ctx context.Context, paths []string, opts ...Option) ([]*Experiment, error) {
	o := applyOptions(opts)
	exps := make([]*Experiment, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			exp, err := fromFile(ctx, path, &o)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			exps[i] = exp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return exps, nil
}
