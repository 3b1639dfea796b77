package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
	"github.com/GabrielBaezJ/travel-brain/internal/telemetry"
)

var (
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrDayNotFound       = errors.New("itinerary day not found")
)

// ItineraryService handles day-by-day trip plans. Ownership is always
// checked through the trip the itinerary belongs to.
type ItineraryService struct {
	itineraries repository.ItineraryRepository
	trips       repository.TripRepository
}

// NewItineraryService creates a new ItineraryService
func NewItineraryService(itineraries repository.ItineraryRepository, trips repository.TripRepository) *ItineraryService {
	return &ItineraryService{itineraries: itineraries, trips: trips}
}

// Save creates or replaces the itinerary of a trip owned by userID
func (s *ItineraryService) Save(ctx context.Context, userID primitive.ObjectID, tripID string, req *dto.SaveItineraryRequest) (*domain.Itinerary, error) {
	ctx, span := telemetry.StartSpan(ctx, "ItineraryService.Save")
	defer span.End()

	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	days := req.Days
	if days == nil {
		days = []domain.ItineraryDay{}
	}
	prefs := req.Preferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}

	existing, err := s.itineraries.GetByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		update := &dto.UpdateItineraryRequest{Days: days, Preferences: prefs}
		if err := s.itineraries.Update(ctx, existing.ID.Hex(), update); err != nil {
			return nil, err
		}
		existing.Days = days
		existing.Preferences = prefs
		existing.UpdatedAt = time.Now()
		return existing, nil
	}

	now := time.Now()
	it := &domain.Itinerary{
		TripID:      trip.ID,
		Days:        days,
		Preferences: prefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.itineraries.Create(ctx, it); err != nil {
		// The unique tripId index keeps one itinerary per trip; a
		// concurrent save won the race.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return s.itineraries.GetByTrip(ctx, trip.ID)
		}
		return nil, err
	}
	return it, nil
}

// GetByTrip returns the itinerary of a trip owned by userID
func (s *ItineraryService) GetByTrip(ctx context.Context, userID primitive.ObjectID, tripID string) (*domain.Itinerary, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	it, err := s.itineraries.GetByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItineraryNotFound
	}
	return it, nil
}

// ListByUser returns a page of the itineraries of the user's trips
func (s *ItineraryService) ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Itinerary, int64, error) {
	tripIDs, err := s.trips.TripIDsByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.itineraries.ListByTrips(ctx, tripIDs, pq)
}

// Update applies a partial update to an itinerary owned by userID
func (s *ItineraryService) Update(ctx context.Context, userID primitive.ObjectID, id string, req *dto.UpdateItineraryRequest) (*domain.Itinerary, error) {
	ctx, span := telemetry.StartSpan(ctx, "ItineraryService.Update")
	defer span.End()

	if _, err := s.ownedItinerary(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.itineraries.Update(ctx, id, req); err != nil {
		if errors.Is(err, repository.ErrNotMatched) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}
	return s.itineraries.GetByID(ctx, id)
}

// UpdateDay replaces a single day (1-based) of an itinerary owned by userID
func (s *ItineraryService) UpdateDay(ctx context.Context, userID primitive.ObjectID, id string, dayNumber int, day domain.ItineraryDay) (*domain.Itinerary, error) {
	ctx, span := telemetry.StartSpan(ctx, "ItineraryService.UpdateDay")
	defer span.End()

	if _, err := s.ownedItinerary(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.itineraries.UpdateDay(ctx, id, dayNumber, day); err != nil {
		if errors.Is(err, repository.ErrNotMatched) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	return s.itineraries.GetByID(ctx, id)
}

// Delete removes an itinerary owned by userID
func (s *ItineraryService) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	if _, err := s.ownedItinerary(ctx, userID, id); err != nil {
		return err
	}
	err := s.itineraries.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotMatched) {
		return ErrItineraryNotFound
	}
	return err
}

func (s *ItineraryService) ownedTrip(ctx context.Context, userID primitive.ObjectID, tripID string) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if trip.UserID != userID {
		return nil, ErrNotOwner
	}
	return trip, nil
}

func (s *ItineraryService) ownedItinerary(ctx context.Context, userID primitive.ObjectID, id string) (*domain.Itinerary, error) {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItineraryNotFound
	}
	if _, err := s.ownedTrip(ctx, userID, it.TripID.Hex()); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, ErrNotOwner
		}
		return nil, err
	}
	return it, nil
}
