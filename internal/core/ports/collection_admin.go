package ports

import "context"

// CollectionAdmin exposes the whole-collection operations the clear-data
// script needs.
type CollectionAdmin interface {
	CollectionNames(ctx context.Context) ([]string, error)
	CountDocuments(ctx context.Context, collection string) (int64, error)
	// DeleteAll removes every document from collection and returns the count.
	DeleteAll(ctx context.Context, collection string) (int64, error)
}
