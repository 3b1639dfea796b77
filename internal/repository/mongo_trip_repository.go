package repository

import (
	"context"
	"errors"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTripRepository implements TripRepository backed by the trips collection
type MongoTripRepository struct {
	coll *mongo.Collection
}

// NewMongoTripRepository creates a new MongoTripRepository
func NewMongoTripRepository(db *mongo.Database) *MongoTripRepository {
	return &MongoTripRepository{coll: db.Collection("trips")}
}

// Create creates a new trip
func (r *MongoTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	res, err := r.coll.InsertOne(ctx, trip)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		trip.ID = oid
	}
	return nil
}

// GetByID retrieves a trip by ID
func (r *MongoTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	trip := &domain.Trip{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return trip, nil
}

// ListByUser returns a page of the user's trips, newest first
func (r *MongoTripRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Trip, int64, error) {
	filter := bson.M{"userId": userID}
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

	var trips []*domain.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// TripIDsByUser returns all trip IDs owned by the user
func (r *MongoTripRepository) TripIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// Delete removes a trip
func (r *MongoTripRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotMatched
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotMatched
	}
	return nil
}

// Count returns the total number of trips
func (r *MongoTripRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
