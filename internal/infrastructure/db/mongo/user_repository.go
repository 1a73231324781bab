package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/idance/opstools/internal/core/domain"
)

// UserRepository implements ports.UserRepository over one users collection.
// The collection name is environment-dependent and resolved by the caller.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	return &UserRepository{coll: db.Collection(collection)}
}

type userDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Profile struct {
		Username    *string `bson:"username,omitempty"`
		DisplayName string  `bson:"displayName,omitempty"`
	} `bson:"profile,omitempty"`
	Auth struct {
		Email      string `bson:"email,omitempty"`
		ProviderID string `bson:"providerId,omitempty"`
	} `bson:"auth,omitempty"`
	CreatedAt time.Time `bson:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty"`
}

func (d userDoc) toDomain() domain.User {
	u := domain.User{
		ID:        d.ID.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Profile.Username != nil {
		u.Profile.Username = *d.Profile.Username
	}
	u.Profile.DisplayName = d.Profile.DisplayName
	u.Auth.Email = d.Auth.Email
	u.Auth.ProviderID = d.Auth.ProviderID
	return u
}

// UsernameExists reports whether any user document holds username.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"profile.username": username}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find username: %w", err)
	}
	return true, nil
}

// FindMissingUsernames returns every user whose username is null or absent,
// including legacy documents with no profile subdocument at all.
func (r *UserRepository) FindMissingUsernames(ctx context.Context) ([]domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"profile.username": nil},
		bson.M{"profile.username": bson.M{"$exists": false}},
		bson.M{"profile": bson.M{"$exists": false}},
	}}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// SetUsername writes username onto the identified user and stamps updatedAt.
func (r *UserRepository) SetUsername(ctx context.Context, id, username string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("parse user id %q: %w", id, err)
	}

	result, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"profile.username": username,
		"updatedAt":        time.Now().UTC(),
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, domain.ErrUsernameTaken
		}
		return false, fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return false, domain.ErrUserNotFound
	}
	return result.ModifiedCount > 0, nil
}
