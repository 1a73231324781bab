package ports

import (
	"context"

	"github.com/idance/opstools/internal/core/domain"
)

// IndexAdmin creates and inspects collection indexes.
type IndexAdmin interface {
	CreateIndex(ctx context.Context, idx domain.Index) (string, error)
	ListIndexes(ctx context.Context, collection string) ([]domain.IndexInfo, error)
}
