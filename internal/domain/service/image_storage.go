package service

import (
	"context"
	"io"
)

// ImageStorage defines the interface for storing listing photos in a blob
// store. Implementations return the public URL of the stored object.
type ImageStorage interface {
	// Upload writes the image content under the given key and returns its
	// publicly reachable URL.
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)

	// Remove deletes the object stored under the given key. Removing a key
	// that does not exist is not an error.
	Remove(ctx context.Context, key string) error
}
