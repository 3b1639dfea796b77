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

// mockDestinationRepository is a mock implementation of repository.DestinationRepository
type mockDestinationRepository struct {
	destinations map[string]*domain.Destination
}

func newMockDestinationRepository() *mockDestinationRepository {
	return &mockDestinationRepository{destinations: make(map[string]*domain.Destination)}
}

func (r *mockDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	r.destinations[d.ID.Hex()] = d
	return nil
}

func (r *mockDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	return r.destinations[id], nil
}

func (r *mockDestinationRepository) List(ctx context.Context, pq dto.PageQuery, search string) ([]*domain.Destination, int64, error) {
	out := make([]*domain.Destination, 0, len(r.destinations))
	for _, d := range r.destinations {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (r *mockDestinationRepository) Update(ctx context.Context, id string, req *dto.UpdateDestinationRequest) error {
	d := r.destinations[id]
	if d == nil {
		return repository.ErrNotMatched
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Country != nil {
		d.Country = *req.Country
	}
	return nil
}

func (r *mockDestinationRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.destinations[id]; !ok {
		return repository.ErrNotMatched
	}
	delete(r.destinations, id)
	return nil
}

func (r *mockDestinationRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.destinations)), nil
}

// mockRatingRepository is a mock implementation of repository.RatingRepository
type mockRatingRepository struct {
	ratings map[string]*domain.Rating
}

func newMockRatingRepository() *mockRatingRepository {
	return &mockRatingRepository{ratings: make(map[string]*domain.Rating)}
}

func ratingKey(destinationID, userID primitive.ObjectID) string {
	return destinationID.Hex() + "/" + userID.Hex()
}

func (r *mockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	key := ratingKey(rating.DestinationID, rating.UserID)
	if _, ok := r.ratings[key]; ok {
		return repository.ErrDuplicateKey
	}
	if rating.ID.IsZero() {
		rating.ID = primitive.NewObjectID()
	}
	r.ratings[key] = rating
	return nil
}

func (r *mockRatingRepository) GetByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) (*domain.Rating, error) {
	return r.ratings[ratingKey(destinationID, userID)], nil
}

func (r *mockRatingRepository) UpdateValue(ctx context.Context, id primitive.ObjectID, rating float64, comment string) error {
	for _, rt := range r.ratings {
		if rt.ID == id {
			rt.Rating = rating
			rt.Comment = comment
			return nil
		}
	}
	return repository.ErrNotMatched
}

func (r *mockRatingRepository) DeleteByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) error {
	key := ratingKey(destinationID, userID)
	if _, ok := r.ratings[key]; !ok {
		return repository.ErrNotMatched
	}
	delete(r.ratings, key)
	return nil
}

func (r *mockRatingRepository) ListByDestination(ctx context.Context, destinationID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Rating, int64, error) {
	out, _ := r.AllByDestination(ctx, destinationID)
	return out, int64(len(out)), nil
}

func (r *mockRatingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.Rating, int64, error) {
	var out []*domain.Rating
	for _, rt := range r.ratings {
		if rt.UserID == userID {
			out = append(out, rt)
		}
	}
	return out, int64(len(out)), nil
}

func (r *mockRatingRepository) AllByDestination(ctx context.Context, destinationID primitive.ObjectID) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rt := range r.ratings {
		if rt.DestinationID == destinationID {
			out = append(out, rt)
		}
	}
	return out, nil
}

// mockFavoriteRepository is a mock implementation of repository.FavoriteRepository
type mockFavoriteRepository struct {
	favorites map[string]*domain.Favorite
}

func newMockFavoriteRepository() *mockFavoriteRepository {
	return &mockFavoriteRepository{favorites: make(map[string]*domain.Favorite)}
}

func (r *mockFavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	key := ratingKey(f.DestinationID, f.UserID)
	if _, ok := r.favorites[key]; ok {
		return repository.ErrDuplicateKey
	}
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	r.favorites[key] = f
	return nil
}

func (r *mockFavoriteRepository) GetByDestinationAndUser(ctx context.Context, destinationID, userID primitive.ObjectID) (*domain.Favorite, error) {
	return r.favorites[ratingKey(destinationID, userID)], nil
}

func (r *mockFavoriteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	for key, f := range r.favorites {
		if f.ID == id {
			delete(r.favorites, key)
			return nil
		}
	}
	return repository.ErrNotMatched
}

func (r *mockFavoriteRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Favorite, error) {
	var out []*domain.Favorite
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func newTestDestinationService() (*DestinationService, *mockDestinationRepository, *mockRatingRepository, *mockFavoriteRepository) {
	destinations := newMockDestinationRepository()
	ratings := newMockRatingRepository()
	favorites := newMockFavoriteRepository()
	return NewDestinationService(destinations, ratings, favorites), destinations, ratings, favorites
}

func seedDestination(repo *mockDestinationRepository, name string) *domain.Destination {
	d := &domain.Destination{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Country:   "Spain",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	repo.destinations[d.ID.Hex()] = d
	return d
}

func TestDestinationService_Rate(t *testing.T) {
	svc, destinations, ratings, _ := newTestDestinationService()
	dest := seedDestination(destinations, "Granada")
	userID := primitive.NewObjectID()

	t.Run("create then update keeps one rating per user", func(t *testing.T) {
		first, err := svc.Rate(context.Background(), dest.ID.Hex(), userID, &dto.RateDestinationRequest{Rating: 4, Comment: "nice"})
		if err != nil {
			t.Fatalf("Rate() error = %v", err)
		}

		second, err := svc.Rate(context.Background(), dest.ID.Hex(), userID, &dto.RateDestinationRequest{Rating: 2, Comment: "changed my mind"})
		if err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if second.ID != first.ID {
			t.Error("Rate() created a second rating instead of updating")
		}
		if second.Rating != 2 {
			t.Errorf("Rate() Rating = %v, want 2", second.Rating)
		}
		if len(ratings.ratings) != 1 {
			t.Errorf("stored ratings = %d, want 1", len(ratings.ratings))
		}
	})

	t.Run("out of range rating", func(t *testing.T) {
		_, err := svc.Rate(context.Background(), dest.ID.Hex(), userID, &dto.RateDestinationRequest{Rating: 6})
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Rate() error = %v, want %v", err, ErrInvalidRating)
		}
	})

	t.Run("unknown destination", func(t *testing.T) {
		_, err := svc.Rate(context.Background(), primitive.NewObjectID().Hex(), userID, &dto.RateDestinationRequest{Rating: 3})
		if !errors.Is(err, ErrDestinationNotFound) {
			t.Errorf("Rate() error = %v, want %v", err, ErrDestinationNotFound)
		}
	})
}

func TestDestinationService_RatingStats(t *testing.T) {
	svc, destinations, ratings, _ := newTestDestinationService()
	dest := seedDestination(destinations, "Lisbon")

	t.Run("empty destination", func(t *testing.T) {
		stats, err := svc.RatingStats(context.Background(), dest.ID.Hex())
		if err != nil {
			t.Fatalf("RatingStats() error = %v", err)
		}
		if stats.Count != 0 || stats.Average != 0 {
			t.Errorf("RatingStats() = %+v, want zero stats", stats)
		}
	})

	t.Run("average rounds to one decimal", func(t *testing.T) {
		for i, v := range []float64{5, 4, 4} {
			ratings.ratings[ratingKey(dest.ID, primitive.NewObjectID())] = &domain.Rating{
				ID:            primitive.NewObjectID(),
				DestinationID: dest.ID,
				UserID:        primitive.NewObjectID(),
				Rating:        v,
				CreatedAt:     time.Now().Add(time.Duration(i) * time.Second),
			}
		}

		stats, err := svc.RatingStats(context.Background(), dest.ID.Hex())
		if err != nil {
			t.Fatalf("RatingStats() error = %v", err)
		}
		if stats.Count != 3 {
			t.Errorf("RatingStats() Count = %d, want 3", stats.Count)
		}
		if stats.Average != 4.3 {
			t.Errorf("RatingStats() Average = %v, want 4.3", stats.Average)
		}
		if stats.Distribution[4] != 2 || stats.Distribution[5] != 1 {
			t.Errorf("RatingStats() Distribution = %v", stats.Distribution)
		}
	})
}

func TestDestinationService_ToggleFavorite(t *testing.T) {
	svc, destinations, _, favorites := newTestDestinationService()
	dest := seedDestination(destinations, "Kyoto")
	userID := primitive.NewObjectID()

	t.Run("toggle on then off", func(t *testing.T) {
		on, err := svc.ToggleFavorite(context.Background(), dest.ID.Hex(), userID)
		if err != nil {
			t.Fatalf("ToggleFavorite() error = %v", err)
		}
		if !on {
			t.Error("ToggleFavorite() = false, want true")
		}

		off, err := svc.ToggleFavorite(context.Background(), dest.ID.Hex(), userID)
		if err != nil {
			t.Fatalf("ToggleFavorite() error = %v", err)
		}
		if off {
			t.Error("ToggleFavorite() = true, want false")
		}
		if len(favorites.favorites) != 0 {
			t.Errorf("stored favorites = %d, want 0", len(favorites.favorites))
		}
	})

	t.Run("unknown destination", func(t *testing.T) {
		_, err := svc.ToggleFavorite(context.Background(), primitive.NewObjectID().Hex(), userID)
		if !errors.Is(err, ErrDestinationNotFound) {
			t.Errorf("ToggleFavorite() error = %v, want %v", err, ErrDestinationNotFound)
		}
	})
}
