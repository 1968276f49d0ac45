// Package media stores uploaded images (article photos, community posts,
// challenge pictures) and serves them back by URL.
package media

import (
	"context"
	"io"
)

// Store is the blob-storage boundary. Upload returns the public URL of
// the stored file; Delete accepts that URL back.
type Store interface {
	Upload(ctx context.Context, r io.Reader, name, contentType, bucket string) (string, error)
	Delete(ctx context.Context, fileURL, bucket string) error
}

// File carries an incoming upload through a service boundary.
type File struct {
	Reader      io.Reader
	FileName    string
	ContentType string
}
