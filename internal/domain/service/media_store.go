package service

import "context"

// MediaStore persists uploaded media such as profile photos.
// Keys are opaque relative paths; URL resolves a key to a path
// the HTTP layer can serve.
type MediaStore interface {
	// Put writes data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads the object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key if it exists.
	Delete(ctx context.Context, key string) error

	// URL returns the public path for the object stored under key.
	URL(key string) string
}
