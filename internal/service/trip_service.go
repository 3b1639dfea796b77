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
	ErrTripNotFound = errors.New("trip not found")
	ErrNotOwner     = errors.New("resource does not belong to the caller")
	ErrInvalidDate  = errors.New("invalid date format")
)

// TripService handles trips owned by a user
type TripService struct {
	trips repository.TripRepository
}

// NewTripService creates a new TripService
func NewTripService(trips repository.TripRepository) *TripService {
	return &TripService{trips: trips}
}

// Create creates a trip owned by userID
func (s *TripService) Create(ctx context.Context, userID primitive.ObjectID, req *dto.CreateTripRequest) (*domain.Trip, error) {
	ctx, span := telemetry.StartSpan(ctx, "TripService.Create")
	defer span.End()

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := time.Now()
	trip := &domain.Trip{
		UserID:      userID,
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Get returns a trip if it belongs to userID
func (s *TripService) Get(ctx context.Context, userID primitive.ObjectID, id string) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
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

// List returns a page of the user's trips
func (s *TripService) List(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Trip, int64, error) {
	return s.trips.ListByUser(ctx, userID, pq)
}

// Delete removes a trip if it belongs to userID
func (s *TripService) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "TripService.Delete")
	defer span.End()

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if trip == nil {
		return ErrTripNotFound
	}
	if trip.UserID != userID {
		return ErrNotOwner
	}
	return s.trips.Delete(ctx, id)
}

// parseDate accepts RFC 3339 timestamps and bare dates. An empty string
// is not an error, it means the field was omitted.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
