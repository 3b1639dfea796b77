package repository

import (
	"context"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRouteRepository implements RouteRepository backed by the routes
// collection
type MongoRouteRepository struct {
	coll *mongo.Collection
}

// NewMongoRouteRepository creates a new MongoRouteRepository
func NewMongoRouteRepository(db *mongo.Database) *MongoRouteRepository {
	return &MongoRouteRepository{coll: db.Collection("routes")}
}

// Create saves a favorite route
func (r *MongoRouteRepository) Create(ctx context.Context, route *domain.FavoriteRoute) error {
	res, err := r.coll.InsertOne(ctx, route)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		route.ID = oid
	}
	return nil
}

// ListByUser returns a page of the user's saved routes, newest first
func (r *MongoRouteRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.FavoriteRoute, int64, error) {
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

	var routes []*domain.FavoriteRoute
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, 0, err
	}
	return routes, total, nil
}

// DeleteOwned removes a route only if it belongs to userID
func (r *MongoRouteRepository) DeleteOwned(ctx context.Context, id string, userID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotMatched
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotMatched
	}
	return nil
}

// Count returns the total number of saved routes
func (r *MongoRouteRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
