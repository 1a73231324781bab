package ports

import (
	"context"

	"github.com/idance/opstools/internal/core/domain"
)

// BucketLister enumerates every object in a blob-store bucket.
type BucketLister interface {
	ListAll(ctx context.Context) ([]domain.StorageObject, error)
}
