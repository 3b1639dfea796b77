package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trip represents a planned trip owned by a user.
type Trip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Destination string             `bson:"destination" json:"destination"`
	StartDate   *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Budget      float64            `bson:"budget,omitempty" json:"budget,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Destination represents a travel destination in the shared catalog.
type Destination struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Country     string             `bson:"country" json:"country"`
	Latitude    float64            `bson:"latitude" json:"latitude"`
	Longitude   float64            `bson:"longitude" json:"longitude"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ItineraryDay is one day of an itinerary. The shape of activities is
// client-defined and stored as-is.
type ItineraryDay map[string]interface{}

// Itinerary represents the day-by-day plan for a trip. At most one
// itinerary exists per trip.
type Itinerary struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	TripID      primitive.ObjectID     `bson:"tripId" json:"tripId"`
	Days        []ItineraryDay         `bson:"days" json:"days"`
	Preferences map[string]interface{} `bson:"preferences" json:"preferences"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// Rating is a user's rating of a destination. One per (destination, user).
type Rating struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DestinationID primitive.ObjectID `bson:"destinationId" json:"destinationId"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Rating        float64            `bson:"rating" json:"rating"`
	Comment       string             `bson:"comment" json:"comment"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RatingStats aggregates the ratings of a destination.
type RatingStats struct {
	Average      float64       `json:"average"`
	Count        int           `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}

// Favorite marks a destination as a favorite of a user.
type Favorite struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DestinationID primitive.ObjectID `bson:"destinationId" json:"destinationId"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// FavoriteRoute is a saved route between two places.
type FavoriteRoute struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID     `bson:"userId" json:"userId"`
	Origin      string                 `bson:"origin" json:"origin"`
	Destination string                 `bson:"destination" json:"destination"`
	Distance    *float64               `bson:"distance,omitempty" json:"distance,omitempty"`
	Duration    *float64               `bson:"duration,omitempty" json:"duration,omitempty"`
	RouteData   map[string]interface{} `bson:"routeData" json:"routeData"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
}

// AdminMetrics is the collection-count snapshot shown on the admin panel.
type AdminMetrics struct {
	UsersTotal       int64 `json:"usersTotal"`
	UsersActive      int64 `json:"usersActive"`
	UsersDeactivated int64 `json:"usersDeactivated"`
	Destinations     int64 `json:"destinations"`
	Trips            int64 `json:"trips"`
	Itineraries      int64 `json:"itineraries"`
	Routes           int64 `json:"routes"`
}
