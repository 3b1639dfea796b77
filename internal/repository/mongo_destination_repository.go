package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDestinationRepository implements DestinationRepository backed by the
// destinations collection
type MongoDestinationRepository struct {
	coll *mongo.Collection
}

// NewMongoDestinationRepository creates a new MongoDestinationRepository
func NewMongoDestinationRepository(db *mongo.Database) *MongoDestinationRepository {
	return &MongoDestinationRepository{coll: db.Collection("destinations")}
}

// Create creates a new destination
func (r *MongoDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

// GetByID retrieves a destination by ID
func (r *MongoDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	d := &domain.Destination{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// List returns a page of destinations, newest first, optionally filtered by
// a case-insensitive search over name, description and country
func (r *MongoDestinationRepository) List(ctx context.Context, pq dto.PageQuery, search string) ([]*domain.Destination, int64, error) {
	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"country": re},
		}
	}

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

	var destinations []*domain.Destination
	if err := cursor.All(ctx, &destinations); err != nil {
		return nil, 0, err
	}
	return destinations, total, nil
}

// Update applies the non-nil fields of req
func (r *MongoDestinationRepository) Update(ctx context.Context, id string, req *dto.UpdateDestinationRequest) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotMatched
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Country != nil {
		set["country"] = *req.Country
	}
	if req.Latitude != nil {
		set["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		set["longitude"] = *req.Longitude
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
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

// Delete removes a destination
func (r *MongoDestinationRepository) Delete(ctx context.Context, id string) error {
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

// Count returns the total number of destinations
func (r *MongoDestinationRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
