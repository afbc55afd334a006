package ports

import (
	"context"
	"io"
)

// Host is the external image-hosting endpoint. Upload returns the public URL
// of the stored object.
type Host interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}
