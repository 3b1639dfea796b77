package repository

import (
	"context"
	"errors"
	"time"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRatingRepository implements RatingRepository backed by the rates
// collection
type MongoRatingRepository struct {
	coll *mongo.Collection
}

// NewMongoRatingRepository creates a new MongoRatingRepository
func NewMongoRatingRepository(db *mongo.Database) *MongoRatingRepository {
	return &MongoRatingRepository{coll: db.Collection("rates")}
}

// Create creates a new rating
func (r *MongoRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	res, err := r.coll.InsertOne(ctx, rating)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rating.ID = oid
	}
	return nil
}

// GetByDestinationAndUser retrieves a user's rating of a destination
func (r *MongoRatingRepository) GetByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) (*domain.Rating, error) {
	rating := &domain.Rating{}
	err := r.coll.FindOne(ctx, bson.M{"destinationId": destinationID, "userId": userID}).Decode(rating)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return rating, nil
}

// UpdateValue changes a rating's value and comment
func (r *MongoRatingRepository) UpdateValue(ctx context.Context, id primitive.ObjectID, rating float64, comment string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "comment": comment, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotMatched
	}
	return nil
}

// DeleteByDestinationAndUser removes a user's rating of a destination
func (r *MongoRatingRepository) DeleteByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"destinationId": destinationID, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotMatched
	}
	return nil
}

// ListByDestination returns a page of a destination's ratings, newest first
func (r *MongoRatingRepository) ListByDestination(ctx context.Context, destinationID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Rating, int64, error) {
	return r.listPage(ctx, bson.M{"destinationId": destinationID}, pq)
}

// ListByUser returns a page of a user's ratings, newest first
func (r *MongoRatingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Rating, int64, error) {
	return r.listPage(ctx, bson.M{"userId": userID}, pq)
}

func (r *MongoRatingRepository) listPage(ctx context.Context, filter bson.M, pq dto.PageQuery) ([]*domain.Rating, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pq.Skip()).
		SetLimit(int64(pq.Size))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var ratings []*domain.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// AllByDestination returns every rating of a destination
func (r *MongoRatingRepository) AllByDestination(ctx context.Context, destinationID primitive.ObjectID) ([]*domain.Rating, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"destinationId": destinationID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []*domain.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
