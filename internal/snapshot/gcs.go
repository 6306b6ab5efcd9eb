package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// uploadTimeout bounds a single object upload.
const uploadTimeout = 2 * time.Minute

// GCSWriter is the concrete ObjectWriter backed by Google Cloud Storage.
type GCSWriter struct {
	client *storage.Client
}

// NewGCSWriter creates a storage client. Without options it uses Application
// Default Credentials.
func NewGCSWriter(ctx context.Context, opts ...option.ClientOption) (*GCSWriter, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGCSWriter: creating storage client: %w", err)
	}
	return &GCSWriter{client: client}, nil
}

// Close closes the storage client.
func (w *GCSWriter) Close() error {
	if w.client != nil {
		return w.client.Close()
	}
	return nil
}

// WriteObject uploads data to gs://bucket/object.
func (w *GCSWriter) WriteObject(ctx context.Context, bucket, object, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	ow := w.client.Bucket(bucket).Object(object).NewWriter(ctx)
	ow.ContentType = contentType

	if _, err := io.Copy(ow, bytes.NewReader(data)); err != nil {
		_ = ow.Close()
		return fmt.Errorf("WriteObject: copying to %s: %w", URI(bucket, object), err)
	}

	// Close finalizes the upload.
	if err := ow.Close(); err != nil {
		return fmt.Errorf("WriteObject: finalizing %s: %w", URI(bucket, object), err)
	}
	return nil
}

// URI renders a gs:// URI.
func URI(bucket, object string) string {
	return "gs://" + bucket + "/" + strings.TrimPrefix(object, "/")
}
