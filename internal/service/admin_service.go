package service

import (
	"context"
	"errors"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
	"github.com/GabrielBaezJ/travel-brain/internal/telemetry"
)

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")
)

// AdminService exposes the administrative account operations and the
// collection-count metrics panel.
type AdminService struct {
	users        repository.UserRepository
	destinations repository.DestinationRepository
	trips        repository.TripRepository
	itineraries  repository.ItineraryRepository
	routes       repository.RouteRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(
	users repository.UserRepository,
	destinations repository.DestinationRepository,
	trips repository.TripRepository,
	itineraries repository.ItineraryRepository,
	routes repository.RouteRepository,
) *AdminService {
	return &AdminService{
		users:        users,
		destinations: destinations,
		trips:        trips,
		itineraries:  itineraries,
		routes:       routes,
	}
}

// Metrics returns collection counts for the admin panel
func (s *AdminService) Metrics(ctx context.Context) (*domain.AdminMetrics, error) {
	ctx, span := telemetry.StartSpan(ctx, "AdminService.Metrics")
	defer span.End()

	m := &domain.AdminMetrics{}
	var err error
	if m.UsersTotal, err = s.users.CountByStatus(ctx, ""); err != nil {
		return nil, err
	}
	if m.UsersActive, err = s.users.CountByStatus(ctx, domain.StatusActive); err != nil {
		return nil, err
	}
	if m.UsersDeactivated, err = s.users.CountByStatus(ctx, domain.StatusDeactivated); err != nil {
		return nil, err
	}
	if m.Destinations, err = s.destinations.Count(ctx); err != nil {
		return nil, err
	}
	if m.Trips, err = s.trips.Count(ctx); err != nil {
		return nil, err
	}
	if m.Itineraries, err = s.itineraries.Count(ctx); err != nil {
		return nil, err
	}
	if m.Routes, err = s.routes.Count(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// ListUsers returns a page of accounts
func (s *AdminService) ListUsers(ctx context.Context, pq dto.PageQuery) ([]*domain.User, int64, error) {
	return s.users.List(ctx, pq)
}

// GetUser returns a single account
func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetRole changes an account's role. Takes effect on the account's next
// login; identities already issued keep their embedded role.
func (s *AdminService) SetRole(ctx context.Context, id string, role domain.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	err := s.users.SetRole(ctx, id, role)
	if errors.Is(err, repository.ErrNotMatched) {
		return ErrUserNotFound
	}
	return err
}

// SetStatus activates or deactivates an account
func (s *AdminService) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	err := s.users.SetStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotMatched) {
		return ErrUserNotFound
	}
	return err
}

// DeleteUser removes an account
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotMatched) {
		return ErrUserNotFound
	}
	return err
}
