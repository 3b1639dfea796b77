package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
	"github.com/GabrielBaezJ/travel-brain/internal/telemetry"
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrRatingNotFound      = errors.New("rating not found")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// DestinationService handles the destination catalog plus its ratings
// and favorites.
type DestinationService struct {
	destinations repository.DestinationRepository
	ratings      repository.RatingRepository
	favorites    repository.FavoriteRepository
}

// NewDestinationService creates a new DestinationService
func NewDestinationService(
	destinations repository.DestinationRepository,
	ratings repository.RatingRepository,
	favorites repository.FavoriteRepository,
) *DestinationService {
	return &DestinationService{
		destinations: destinations,
		ratings:      ratings,
		favorites:    favorites,
	}
}

// Create creates a catalog destination
func (s *DestinationService) Create(ctx context.Context, req *dto.CreateDestinationRequest) (*domain.Destination, error) {
	ctx, span := telemetry.StartSpan(ctx, "DestinationService.Create")
	defer span.End()

	now := time.Now()
	d := &domain.Destination{
		Name:        req.Name,
		Description: req.Description,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.destinations.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns a destination
func (s *DestinationService) Get(ctx context.Context, id string) (*domain.Destination, error) {
	d, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDestinationNotFound
	}
	return d, nil
}

// List returns a page of destinations, optionally filtered by search
func (s *DestinationService) List(ctx context.Context, pq dto.PageQuery, search string) ([]*domain.Destination, int64, error) {
	return s.destinations.List(ctx, pq, search)
}

// Update applies a partial update to a destination
func (s *DestinationService) Update(ctx context.Context, id string, req *dto.UpdateDestinationRequest) (*domain.Destination, error) {
	ctx, span := telemetry.StartSpan(ctx, "DestinationService.Update")
	defer span.End()

	if err := s.destinations.Update(ctx, id, req); err != nil {
		if errors.Is(err, repository.ErrNotMatched) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a destination
func (s *DestinationService) Delete(ctx context.Context, id string) error {
	err := s.destinations.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotMatched) {
		return ErrDestinationNotFound
	}
	return err
}

// Rate creates or updates the caller's rating of a destination
func (s *DestinationService) Rate(ctx context.Context, destinationID string, userID primitive.ObjectID, req *dto.RateDestinationRequest) (*domain.Rating, error) {
	ctx, span := telemetry.StartSpan(ctx, "DestinationService.Rate")
	defer span.End()

	if !req.Valid() {
		return nil, ErrInvalidRating
	}
	destOID, err := s.destinationOID(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.ratings.GetByDestinationAndUser(ctx, destOID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.ratings.UpdateValue(ctx, existing.ID, req.Rating, req.Comment); err != nil {
			return nil, err
		}
		existing.Rating = req.Rating
		existing.Comment = req.Comment
		existing.UpdatedAt = time.Now()
		return existing, nil
	}

	now := time.Now()
	rating := &domain.Rating{
		DestinationID: destOID,
		UserID:        userID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		// The unique (destinationId, userId) index means a concurrent
		// create already stored one; treat it as the winner.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return s.ratings.GetByDestinationAndUser(ctx, destOID, userID)
		}
		return nil, err
	}
	return rating, nil
}

// MyRating returns the caller's rating of a destination
func (s *DestinationService) MyRating(ctx context.Context, destinationID string, userID primitive.ObjectID) (*domain.Rating, error) {
	destOID, err := s.destinationOID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	rating, err := s.ratings.GetByDestinationAndUser(ctx, destOID, userID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}
	return rating, nil
}

// DeleteRating removes the caller's rating of a destination
func (s *DestinationService) DeleteRating(ctx context.Context, destinationID string, userID primitive.ObjectID) error {
	destOID, err := s.destinationOID(ctx, destinationID)
	if err != nil {
		return err
	}
	err = s.ratings.DeleteByDestinationAndUser(ctx, destOID, userID)
	if errors.Is(err, repository.ErrNotMatched) {
		return ErrRatingNotFound
	}
	return err
}

// ListRatings returns a page of a destination's ratings
func (s *DestinationService) ListRatings(ctx context.Context, destinationID string, pq dto.PageQuery) ([]*domain.Rating, int64, error) {
	destOID, err := s.destinationOID(ctx, destinationID)
	if err != nil {
		return nil, 0, err
	}
	return s.ratings.ListByDestination(ctx, destOID, pq)
}

// ListUserRatings returns a page of the caller's ratings
func (s *DestinationService) ListUserRatings(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Rating, int64, error) {
	return s.ratings.ListByUser(ctx, userID, pq)
}

// RatingStats aggregates a destination's ratings: average rounded to one
// decimal, total count and a 1..5 distribution.
func (s *DestinationService) RatingStats(ctx context.Context, destinationID string) (*domain.RatingStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "DestinationService.RatingStats")
	defer span.End()

	destOID, err := s.destinationOID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.AllByDestination(ctx, destOID)
	if err != nil {
		return nil, err
	}

	stats := &domain.RatingStats{
		Count:        len(ratings),
		Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(ratings) == 0 {
		return stats, nil
	}

	var sum float64
	for _, r := range ratings {
		sum += r.Rating
		bucket := int(math.Round(r.Rating))
		if bucket < 1 {
			bucket = 1
		}
		if bucket > 5 {
			bucket = 5
		}
		stats.Distribution[bucket]++
	}
	stats.Average = math.Round(sum/float64(len(ratings))*10) / 10
	return stats, nil
}

// ToggleFavorite flips the caller's favorite state for a destination and
// returns the resulting state.
func (s *DestinationService) ToggleFavorite(ctx context.Context, destinationID string, userID primitive.ObjectID) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "DestinationService.ToggleFavorite")
	defer span.End()

	destOID, err := s.destinationOID(ctx, destinationID)
	if err != nil {
		return false, err
	}

	existing, err := s.favorites.GetByDestinationAndUser(ctx, destOID, userID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.favorites.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrNotMatched) {
			return false, err
		}
		return false, nil
	}

	f := &domain.Favorite{
		DestinationID: destOID,
		UserID:        userID,
		CreatedAt:     time.Now(),
	}
	if err := s.favorites.Create(ctx, f); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ListFavorites returns the caller's favorite destinations
func (s *DestinationService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]*domain.Destination, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	destinations := make([]*domain.Destination, 0, len(favorites))
	for _, f := range favorites {
		d, err := s.destinations.GetByID(ctx, f.DestinationID.Hex())
		if err != nil {
			return nil, err
		}
		if d != nil {
			destinations = append(destinations, d)
		}
	}
	return destinations, nil
}

// destinationOID resolves a destination path parameter, confirming the
// destination exists.
func (s *DestinationService) destinationOID(ctx context.Context, id string) (primitive.ObjectID, error) {
	d, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if d == nil {
		return primitive.NilObjectID, ErrDestinationNotFound
	}
	return d.ID, nil
}
