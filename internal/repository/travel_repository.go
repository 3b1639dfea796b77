package repository

import (
	"context"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripRepository defines the interface for trip data access
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	// GetByID returns (nil, nil) if absent.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	// ListByUser returns a page of the user's trips, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Trip, int64, error)
	// TripIDsByUser returns all trip IDs owned by the user.
	TripIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// DestinationRepository defines the interface for destination data access
type DestinationRepository interface {
	Create(ctx context.Context, d *domain.Destination) error
	GetByID(ctx context.Context, id string) (*domain.Destination, error)
	// List returns a page of destinations, newest first. A non-empty
	// search filters name/description/country case-insensitively.
	List(ctx context.Context, pq dto.PageQuery, search string) ([]*domain.Destination, int64, error)
	// Update applies the non-nil fields of req. Returns ErrNotMatched if absent.
	Update(ctx context.Context, id string, req *dto.UpdateDestinationRequest) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ItineraryRepository defines the interface for itinerary data access
type ItineraryRepository interface {
	Create(ctx context.Context, it *domain.Itinerary) error
	GetByID(ctx context.Context, id string) (*domain.Itinerary, error)
	// GetByTrip returns (nil, nil) if the trip has no itinerary.
	GetByTrip(ctx context.Context, tripID primitive.ObjectID) (*domain.Itinerary, error)
	// Update applies the non-nil fields of req. Returns ErrNotMatched if absent.
	Update(ctx context.Context, id string, req *dto.UpdateItineraryRequest) error
	// UpdateDay replaces a single day (1-based dayNumber). Returns
	// ErrNotMatched if the itinerary or the day does not exist.
	UpdateDay(ctx context.Context, id string, dayNumber int, day domain.ItineraryDay) error
	Delete(ctx context.Context, id string) error
	// ListByTrips returns a page of itineraries belonging to the given
	// trips, newest first.
	ListByTrips(ctx context.Context, tripIDs []primitive.ObjectID, pq dto.PageQuery) ([]*domain.Itinerary, int64, error)
	Count(ctx context.Context) (int64, error)
}

// RatingRepository defines the interface for destination rating data access
type RatingRepository interface {
	Create(ctx context.Context, r *domain.Rating) error
	// GetByDestinationAndUser returns (nil, nil) if absent.
	GetByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) (*domain.Rating, error)
	// UpdateValue changes a rating's value and comment. Returns
	// ErrNotMatched if absent.
	UpdateValue(ctx context.Context, id primitive.ObjectID, rating float64, comment string) error
	DeleteByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) error
	ListByDestination(ctx context.Context, destinationID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Rating, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Rating, int64, error)
	// AllByDestination returns every rating of a destination (stats).
	AllByDestination(ctx context.Context, destinationID primitive.ObjectID) ([]*domain.Rating, error)
}

// FavoriteRepository defines the interface for destination favorites
type FavoriteRepository interface {
	Create(ctx context.Context, f *domain.Favorite) error
	GetByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) (*domain.Favorite, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Favorite, error)
}

// RouteRepository defines the interface for favorite routes
type RouteRepository interface {
	Create(ctx context.Context, r *domain.FavoriteRoute) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.FavoriteRoute, int64, error)
	// DeleteOwned removes a route only if it belongs to userID. Returns
	// ErrNotMatched otherwise.
	DeleteOwned(ctx context.Context, id string, userID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
