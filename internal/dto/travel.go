package dto

import (
	"strconv"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
)

// PageQuery is a normalized pagination request.
type PageQuery struct {
	Page int
	Size int
}

// Skip returns the number of documents to skip for this page.
func (p PageQuery) Skip() int64 {
	return int64((p.Page - 1) * p.Size)
}

// ParsePageQuery normalizes page/size query parameters: page >= 1,
// 1 <= size <= 100, size defaults to 10.
func ParsePageQuery(pageStr, sizeStr string) PageQuery {
	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(sizeStr)
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return PageQuery{Page: page, Size: size}
}

// CreateTripRequest creates a trip owned by the caller.
type CreateTripRequest struct {
	Name        string  `json:"name" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// CreateDestinationRequest creates a catalog destination.
type CreateDestinationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Country     string  `json:"country" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateDestinationRequest is a partial update; nil fields are untouched.
type UpdateDestinationRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// SaveItineraryRequest creates or replaces the itinerary of a trip.
type SaveItineraryRequest struct {
	Days        []domain.ItineraryDay  `json:"days"`
	Preferences map[string]interface{} `json:"preferences"`
}

// UpdateItineraryRequest is a partial update; nil fields are untouched.
type UpdateItineraryRequest struct {
	Days        []domain.ItineraryDay  `json:"days,omitempty"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

// RateDestinationRequest creates or updates the caller's rating.
type RateDestinationRequest struct {
	Rating  float64 `json:"rating" binding:"required"`
	Comment string  `json:"comment"`
}

// Valid reports whether the rating value is in range.
func (r *RateDestinationRequest) Valid() bool {
	return r.Rating >= 1 && r.Rating <= 5
}

// SaveRouteRequest saves a favorite route for the caller.
type SaveRouteRequest struct {
	Origin      string                 `json:"origin" binding:"required"`
	Destination string                 `json:"destination" binding:"required"`
	Distance    *float64               `json:"distance,omitempty"`
	Duration    *float64               `json:"duration,omitempty"`
	RouteData   map[string]interface{} `json:"routeData,omitempty"`
}

// ToggleFavoriteResponse reports the resulting favorite state.
type ToggleFavoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

// ConvertRequest converts an amount between two currencies.
type ConvertRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	From   string  `json:"from" binding:"required"`
	To     string  `json:"to" binding:"required"`
}

// ConvertResponse is the result of a currency conversion.
type ConvertResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
	Date   string  `json:"date"`
}

// RatesResponse is the cached set of exchange rates for a base currency.
type RatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}
