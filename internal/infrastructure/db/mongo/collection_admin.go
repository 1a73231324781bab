package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionAdmin implements ports.CollectionAdmin against a database.
type CollectionAdmin struct {
	db *mongo.Database
}

func NewCollectionAdmin(db *mongo.Database) *CollectionAdmin {
	return &CollectionAdmin{db: db}
}

func (a *CollectionAdmin) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := a.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

func (a *CollectionAdmin) CountDocuments(ctx context.Context, collection string) (int64, error) {
	count, err := a.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return count, nil
}

// DeleteAll removes every document from collection.
func (a *CollectionAdmin) DeleteAll(ctx context.Context, collection string) (int64, error) {
	result, err := a.db.Collection(collection).DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return result.DeletedCount, nil
}
