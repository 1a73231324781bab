package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/idance/opstools/internal/core/domain"
)

// IndexAdmin implements ports.IndexAdmin against a database.
type IndexAdmin struct {
	db *mongo.Database
}

func NewIndexAdmin(db *mongo.Database) *IndexAdmin {
	return &IndexAdmin{db: db}
}

// CreateIndex creates one index and returns the name the server assigned.
func (a *IndexAdmin) CreateIndex(ctx context.Context, idx domain.Index) (string, error) {
	keys := bson.D{}
	for _, k := range idx.Keys {
		keys = append(keys, bson.E{Key: k.Field, Value: k.Order})
	}

	opts := options.Index()
	if idx.Name != "" {
		opts.SetName(idx.Name)
	}
	if idx.Unique {
		opts.SetUnique(true)
	}
	if idx.Sparse {
		opts.SetSparse(true)
	}

	name, err := a.db.Collection(idx.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	})
	if err != nil {
		return "", fmt.Errorf("create index on %s: %w", idx.Collection, err)
	}
	return name, nil
}

// ListIndexes returns the indexes present on a collection.
func (a *IndexAdmin) ListIndexes(ctx context.Context, collection string) ([]domain.IndexInfo, error) {
	cursor, err := a.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexes on %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var infos []domain.IndexInfo
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
			Key  bson.D `bson:"key"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode index on %s: %w", collection, err)
		}

		info := domain.IndexInfo{Name: doc.Name}
		for _, e := range doc.Key {
			order := 0
			switch v := e.Value.(type) {
			case int32:
				order = int(v)
			case int64:
				order = int(v)
			case float64:
				order = int(v)
			}
			info.Keys = append(info.Keys, domain.IndexKey{Field: e.Key, Order: order})
		}
		infos = append(infos, info)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate indexes on %s: %w", collection, err)
	}
	return infos, nil
}
