package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds MongoDB connection configuration
type MongoConfig struct {
	URI                    string
	Database               string
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration

	// Retry configuration for the initial connect
	MaxRetries    int
	RetryInterval time.Duration
}

// DefaultMongoConfig returns default configuration
func DefaultMongoConfig() *MongoConfig {
	return &MongoConfig{
		URI:                    "mongodb://localhost:27017",
		Database:               "travel_brain",
		ServerSelectionTimeout: 30 * time.Second,
		SocketTimeout:          45 * time.Second,
		MaxRetries:             3,
		RetryInterval:          2 * time.Second,
	}
}

// MongoDB wraps mongo.Client with additional functionality
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	config *MongoConfig
}

// NewMongo creates a new MongoDB connection with retry logic
func NewMongo(ctx context.Context, cfg *MongoConfig) (*MongoDB, error) {
	if cfg == nil {
		cfg = DefaultMongoConfig()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	var client *mongo.Client
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(cfg.RetryInterval)
		}

		client, lastErr = mongo.Connect(ctx, opts)
		if lastErr != nil {
			continue
		}

		if lastErr = client.Ping(ctx, readpref.Primary()); lastErr != nil {
			_ = client.Disconnect(ctx)
			continue
		}

		return &MongoDB{
			client: client,
			db:     client.Database(cfg.Database),
			config: cfg,
		}, nil
	}

	return nil, fmt.Errorf("failed to connect to mongodb after %d attempts: %w", cfg.MaxRetries+1, lastErr)
}

// Database returns the underlying mongo.Database
func (m *MongoDB) Database() *mongo.Database {
	return m.db
}

// Collection returns a collection handle
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Ping checks if the database connection is alive
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// HealthCheck performs a health check on the database
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb health check failed: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the application relies on. Unique
// indexes on username and email close the duplicate-registration race
// at the store level; the rating and favorite indexes enforce one
// document per (destination, user).
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	users := m.db.Collection("users")
	for _, field := range []string{"username", "email"} {
		_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create users.%s index: %w", field, err)
		}
	}

	pairUnique := bson.D{{Key: "destinationId", Value: 1}, {Key: "userId", Value: 1}}
	for _, coll := range []string{"rates", "favorites"} {
		_, err := m.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    pairUnique,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create %s index: %w", coll, err)
		}
	}

	_, err := m.db.Collection("itineraries").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tripId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create itineraries.tripId index: %w", err)
	}

	return nil
}
