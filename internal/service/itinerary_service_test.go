package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
)

// mockTripRepository is a mock implementation of repository.TripRepository
type mockTripRepository struct {
	trips map[string]*domain.Trip
}

func newMockTripRepository() *mockTripRepository {
	return &mockTripRepository{trips: make(map[string]*domain.Trip)}
}

func (r *mockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if trip.ID.IsZero() {
		trip.ID = primitive.NewObjectID()
	}
	r.trips[trip.ID.Hex()] = trip
	return nil
}

func (r *mockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	return r.trips[id], nil
}

func (r *mockTripRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Trip, int64, error) {
	var out []*domain.Trip
	for _, t := range r.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockTripRepository) TripIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var out []primitive.ObjectID
	for _, t := range r.trips {
		if t.UserID == userID {
			out = append(out, t.ID)
		}
	}
	return out, nil
}

func (r *mockTripRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.trips[id]; !ok {
		return repository.ErrNotMatched
	}
	delete(r.trips, id)
	return nil
}

func (r *mockTripRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.trips)), nil
}

// mockItineraryRepository is a mock implementation of repository.ItineraryRepository
type mockItineraryRepository struct {
	itineraries map[string]*domain.Itinerary
}

func newMockItineraryRepository() *mockItineraryRepository {
	return &mockItineraryRepository{itineraries: make(map[string]*domain.Itinerary)}
}

func (r *mockItineraryRepository) Create(ctx context.Context, it *domain.Itinerary) error {
	for _, existing := range r.itineraries {
		if existing.TripID == it.TripID {
			return repository.ErrDuplicateKey
		}
	}
	if it.ID.IsZero() {
		it.ID = primitive.NewObjectID()
	}
	r.itineraries[it.ID.Hex()] = it
	return nil
}

func (r *mockItineraryRepository) GetByID(ctx context.Context, id string) (*domain.Itinerary, error) {
	return r.itineraries[id], nil
}

func (r *mockItineraryRepository) GetByTrip(ctx context.Context, tripID primitive.ObjectID) (*domain.Itinerary, error) {
	for _, it := range r.itineraries {
		if it.TripID == tripID {
			return it, nil
		}
	}
	return nil, nil
}

func (r *mockItineraryRepository) Update(ctx context.Context, id string, req *dto.UpdateItineraryRequest) error {
	it := r.itineraries[id]
	if it == nil {
		return repository.ErrNotMatched
	}
	if req.Days != nil {
		it.Days = req.Days
	}
	if req.Preferences != nil {
		it.Preferences = req.Preferences
	}
	return nil
}

func (r *mockItineraryRepository) UpdateDay(ctx context.Context, id string, dayNumber int, day domain.ItineraryDay) error {
	it := r.itineraries[id]
	if it == nil || dayNumber < 1 || dayNumber > len(it.Days) {
		return repository.ErrNotMatched
	}
	it.Days[dayNumber-1] = day
	return nil
}

func (r *mockItineraryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.itineraries[id]; !ok {
		return repository.ErrNotMatched
	}
	delete(r.itineraries, id)
	return nil
}

func (r *mockItineraryRepository) ListByTrips(ctx context.Context, tripIDs []primitive.ObjectID, pq dto.PageQuery) ([]*domain.Itinerary, int64, error) {
	var out []*domain.Itinerary
	for _, it := range r.itineraries {
		for _, id := range tripIDs {
			if it.TripID == id {
				out = append(out, it)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockItineraryRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.itineraries)), nil
}

func seedTrip(repo *mockTripRepository, userID primitive.ObjectID, name string) *domain.Trip {
	trip := &domain.Trip{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Name:        name,
		Destination: "Lisbon",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	repo.trips[trip.ID.Hex()] = trip
	return trip
}

func TestTripService_Ownership(t *testing.T) {
	trips := newMockTripRepository()
	svc := NewTripService(trips)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	trip := seedTrip(trips, owner, "Summer break")

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.Get(context.Background(), owner, trip.ID.Hex())
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Name != "Summer break" {
			t.Errorf("Get() Name = %v", got.Name)
		}
	})

	t.Run("stranger cannot read", func(t *testing.T) {
		_, err := svc.Get(context.Background(), stranger, trip.ID.Hex())
		if !errors.Is(err, ErrNotOwner) {
			t.Errorf("Get() error = %v, want %v", err, ErrNotOwner)
		}
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := svc.Delete(context.Background(), stranger, trip.ID.Hex())
		if !errors.Is(err, ErrNotOwner) {
			t.Errorf("Delete() error = %v, want %v", err, ErrNotOwner)
		}
		if _, ok := trips.trips[trip.ID.Hex()]; !ok {
			t.Error("trip was deleted by a non-owner")
		}
	})

	t.Run("unknown trip", func(t *testing.T) {
		_, err := svc.Get(context.Background(), owner, primitive.NewObjectID().Hex())
		if !errors.Is(err, ErrTripNotFound) {
			t.Errorf("Get() error = %v, want %v", err, ErrTripNotFound)
		}
	})
}

func TestTripService_Create(t *testing.T) {
	trips := newMockTripRepository()
	svc := NewTripService(trips)
	owner := primitive.NewObjectID()

	t.Run("accepts bare dates", func(t *testing.T) {
		trip, err := svc.Create(context.Background(), owner, &dto.CreateTripRequest{
			Name:        "City break",
			Destination: "Porto",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-05",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if trip.StartDate == nil || trip.EndDate == nil {
			t.Fatal("Create() dates were not parsed")
		}
		if trip.UserID != owner {
			t.Error("Create() owner mismatch")
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, err := svc.Create(context.Background(), owner, &dto.CreateTripRequest{
			Name:        "Bad",
			Destination: "Nowhere",
			StartDate:   "next tuesday",
		})
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Create() error = %v, want %v", err, ErrInvalidDate)
		}
	})
}

func TestItineraryService_Save(t *testing.T) {
	trips := newMockTripRepository()
	itineraries := newMockItineraryRepository()
	svc := NewItineraryService(itineraries, trips)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	trip := seedTrip(trips, owner, "Summer break")

	t.Run("create then replace keeps one per trip", func(t *testing.T) {
		first, err := svc.Save(context.Background(), owner, trip.ID.Hex(), &dto.SaveItineraryRequest{
			Days: []domain.ItineraryDay{{"title": "arrival"}},
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		second, err := svc.Save(context.Background(), owner, trip.ID.Hex(), &dto.SaveItineraryRequest{
			Days: []domain.ItineraryDay{{"title": "arrival"}, {"title": "museum day"}},
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if second.ID != first.ID {
			t.Error("Save() created a second itinerary for the same trip")
		}
		if len(second.Days) != 2 {
			t.Errorf("Save() Days = %d, want 2", len(second.Days))
		}
		if len(itineraries.itineraries) != 1 {
			t.Errorf("stored itineraries = %d, want 1", len(itineraries.itineraries))
		}
	})

	t.Run("stranger cannot save", func(t *testing.T) {
		_, err := svc.Save(context.Background(), stranger, trip.ID.Hex(), &dto.SaveItineraryRequest{})
		if !errors.Is(err, ErrNotOwner) {
			t.Errorf("Save() error = %v, want %v", err, ErrNotOwner)
		}
	})
}

func TestItineraryService_UpdateDay(t *testing.T) {
	trips := newMockTripRepository()
	itineraries := newMockItineraryRepository()
	svc := NewItineraryService(itineraries, trips)
	owner := primitive.NewObjectID()
	trip := seedTrip(trips, owner, "Summer break")

	it, err := svc.Save(context.Background(), owner, trip.ID.Hex(), &dto.SaveItineraryRequest{
		Days: []domain.ItineraryDay{{"title": "arrival"}, {"title": "beach"}},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Run("replaces an existing day", func(t *testing.T) {
		updated, err := svc.UpdateDay(context.Background(), owner, it.ID.Hex(), 2, domain.ItineraryDay{"title": "hiking"})
		if err != nil {
			t.Fatalf("UpdateDay() error = %v", err)
		}
		if updated.Days[1]["title"] != "hiking" {
			t.Errorf("UpdateDay() day = %v", updated.Days[1])
		}
	})

	t.Run("day out of range", func(t *testing.T) {
		_, err := svc.UpdateDay(context.Background(), owner, it.ID.Hex(), 9, domain.ItineraryDay{})
		if !errors.Is(err, ErrDayNotFound) {
			t.Errorf("UpdateDay() error = %v, want %v", err, ErrDayNotFound)
		}
	})
}
