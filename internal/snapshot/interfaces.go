package snapshot

import "context"

// ObjectWriter stores a blob in a bucket.
// This interface enables mocking and testing of storage functionality.
type ObjectWriter interface {
	// WriteObject uploads data to bucket/object with the given content type.
	WriteObject(ctx context.Context, bucket, object, contentType string, data []byte) error
}
