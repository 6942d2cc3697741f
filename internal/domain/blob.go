package domain

import (
	"context"
	"io"
)

// BlobWriter writes objects to cold storage. Used by the archiver to export
// aged scan history before pruning the database.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}
