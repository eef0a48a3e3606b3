// Package blobstore abstracts where BIOM files are read from.
//
// Conversion only ever needs a byte stream, so the interface is a single
// Open method. Implementations cover the local file system, in-memory data
// (mostly for tests) and S3-compatible object storage (subpackage minio).
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore is a read-only source of named byte streams.
type BlobStore interface {
	// Open opens the named blob for reading. The caller closes it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
