package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
)

var ErrRouteNotFound = errors.New("route not found")

// RouteService handles a user's saved favorite routes
type RouteService struct {
	routes repository.RouteRepository
}

// NewRouteService creates a new RouteService
func NewRouteService(routes repository.RouteRepository) *RouteService {
	return &RouteService{routes: routes}
}

// Save saves a favorite route for the caller
func (s *RouteService) Save(ctx context.Context, userID primitive.ObjectID, req *dto.SaveRouteRequest) (*domain.FavoriteRoute, error) {
	routeData := req.RouteData
	if routeData == nil {
		routeData = map[string]interface{}{}
	}
	route := &domain.FavoriteRoute{
		UserID:      userID,
		Origin:      req.Origin,
		Destination: req.Destination,
		Distance:    req.Distance,
		Duration:    req.Duration,
		RouteData:   routeData,
		CreatedAt:   time.Now(),
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// List returns a page of the caller's saved routes
func (s *RouteService) List(ctx context.Context, userID primitive.ObjectID, pq dto.PageQuery) ([]*domain.FavoriteRoute, int64, error) {
	return s.routes.ListByUser(ctx, userID, pq)
}

// Delete removes one of the caller's saved routes
func (s *RouteService) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	err := s.routes.DeleteOwned(ctx, id, userID)
	if errors.Is(err, repository.ErrNotMatched) {
		return ErrRouteNotFound
	}
	return err
}
