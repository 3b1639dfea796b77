package repository

import (
	"context"
	"errors"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFavoriteRepository implements FavoriteRepository backed by the
// favorites collection
type MongoFavoriteRepository struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepository creates a new MongoFavoriteRepository
func NewMongoFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{coll: db.Collection("favorites")}
}

// Create marks a destination as a favorite
func (r *MongoFavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	res, err := r.coll.InsertOne(ctx, f)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid
	}
	return nil
}

// GetByDestinationAndUser retrieves a user's favorite of a destination
func (r *MongoFavoriteRepository) GetByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) (*domain.Favorite, error) {
	f := &domain.Favorite{}
	err := r.coll.FindOne(ctx, bson.M{"destinationId": destinationID, "userId": userID}).Decode(f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}

// Delete removes a favorite
func (r *MongoFavoriteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotMatched
	}
	return nil
}

// ListByUser returns all of a user's favorites, newest first
func (r *MongoFavoriteRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []*domain.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}
