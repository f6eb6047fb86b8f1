package ports

import "context"

// BlobStorage stores design files by slash-separated path.
type BlobStorage interface {
	Get(ctx context.Context, path string) ([]byte, error)

	Put(ctx context.Context, path string, data []byte) error

	// List returns every object path below prefix, recursively.
	List(ctx context.Context, prefix string) ([]string, error)

	// Remove deletes one object. Removing a missing object is not an error.
	Remove(ctx context.Context, path string) error
}
