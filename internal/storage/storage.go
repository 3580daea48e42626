package storage

import (
	"context"
	"io"
)

// ImageStore persists uploaded label images. Save returns the public URL
// of the stored file.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}
