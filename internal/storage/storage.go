package storage

import "context"

// ObjectStore persists uploaded images and returns a public URL.
// folder is "shops" or "products"; the caller picks the filename.
type ObjectStore interface {
	Put(
		ctx context.Context,
		folder string,
		filename string,
		contentType string,
		data []byte,
	) (url string, err error)
}
