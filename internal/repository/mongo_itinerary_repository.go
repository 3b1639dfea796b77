package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoItineraryRepository implements ItineraryRepository backed by the
// itineraries collection
type MongoItineraryRepository struct {
	coll *mongo.Collection
}

// NewMongoItineraryRepository creates a new MongoItineraryRepository
func NewMongoItineraryRepository(db *mongo.Database) *MongoItineraryRepository {
	return &MongoItineraryRepository{coll: db.Collection("itineraries")}
}

// Create creates a new itinerary
func (r *MongoItineraryRepository) Create(ctx context.Context, it *domain.Itinerary) error {
	res, err := r.coll.InsertOne(ctx, it)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		it.ID = oid
	}
	return nil
}

// GetByID retrieves an itinerary by ID
func (r *MongoItineraryRepository) GetByID(ctx context.Context, id string) (*domain.Itinerary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetByTrip retrieves the itinerary of a trip
func (r *MongoItineraryRepository) GetByTrip(ctx context.Context, tripID primitive.ObjectID) (*domain.Itinerary, error) {
	return r.findOne(ctx, bson.M{"tripId": tripID})
}

func (r *MongoItineraryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Itinerary, error) {
	it := &domain.Itinerary{}
	err := r.coll.FindOne(ctx, filter).Decode(it)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return it, nil
}

// Update applies the non-nil fields of req
func (r *MongoItineraryRepository) Update(ctx context.Context, id string, req *dto.UpdateItineraryRequest) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotMatched
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Days != nil {
		set["days"] = req.Days
	}
	if req.Preferences != nil {
		set["preferences"] = req.Preferences
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotMatched
	}
	return nil
}

// UpdateDay replaces a single day of an itinerary. dayNumber is 1-based.
func (r *MongoItineraryRepository) UpdateDay(ctx context.Context, id string, dayNumber int, day domain.ItineraryDay) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotMatched
	}
	idx := dayNumber - 1
	if idx < 0 {
		return ErrNotMatched
	}

	// The positional filter matches only when the index exists.
	filter := bson.M{
		"_id":                       oid,
		fmt.Sprintf("days.%d", idx): bson.M{"$exists": true},
	}
	update := bson.M{"$set": bson.M{
		fmt.Sprintf("days.%d", idx): day,
		"updatedAt":                 time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotMatched
	}
	return nil
}

// Delete removes an itinerary
func (r *MongoItineraryRepository) Delete(ctx context.Context, id string) error {
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

// ListByTrips returns a page of itineraries belonging to the given trips
func (r *MongoItineraryRepository) ListByTrips(ctx context.Context, tripIDs []primitive.ObjectID, pq dto.PageQuery) ([]*domain.Itinerary, int64, error) {
	if len(tripIDs) == 0 {
		return []*domain.Itinerary{}, 0, nil
	}
	filter := bson.M{"tripId": bson.M{"$in": tripIDs}}

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

	var itineraries []*domain.Itinerary
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, 0, err
	}
	return itineraries, total, nil
}

// Count returns the total number of itineraries
func (r *MongoItineraryRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
