package storage

import (
	"context"
	"io"
)

// ImageStore hosts vehicle, option and brand images and returns their public
// URL. The URL is what gets stored on records as imageUrl.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}
