package s3blob

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// Writer implements domain.BlobWriter using the S3 transfer manager, which
// switches to multipart uploads automatically once the payload outgrows a
// single part.
type Writer struct {
	uploader *manager.Uploader
	bucket   string
}

// NewWriter creates a Writer that uploads to the client's configured bucket.
func NewWriter(c *Client) *Writer {
	return &Writer{
		uploader: manager.NewUploader(c.S3()),
		bucket:   c.Bucket(),
	}
}

// Put uploads data under the given key.
func (w *Writer) Put(ctx context.Context, path string, data io.Reader, contentType string) error {
	_, err := w.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(path),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3blob: put object %s: %w", path, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.BlobWriter = (*Writer)(nil)
