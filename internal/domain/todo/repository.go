package todo

import (
	"context"
)

// Repository persists todos. Every lookup is scoped to the owner, and a todo
// owned by someone else is indistinguishable from a missing one (ErrNotFound).
// Ids the backend cannot parse are reported as ErrNotFound as well.
type Repository interface {
	List(ctx context.Context, ownerID string) ([]Todo, error)
	Get(ctx context.Context, ownerID, id string) (*Todo, error)
	Create(ctx context.Context, t *Todo) (string, error)
	// Update replaces name and description and returns the stored result.
	Update(ctx context.Context, ownerID, id, name, description string) (*Todo, error)
	// SetImage atomically sets image_url and marks the todo completed.
	SetImage(ctx context.Context, ownerID, id, imageURL string) (*Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// BlobStore keeps attachment bytes. Put is idempotent per key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Dispatcher runs blocking work off the request goroutine and waits for it.
type Dispatcher interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
