package repository

import (
	"context"
	"errors"
	"time"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
)

// ErrDuplicateKey is returned when a store-level uniqueness constraint
// rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines the interface for account data access
type UserRepository interface {
	// Create creates a new account. Returns ErrDuplicateKey if the
	// username or email is already taken.
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves an account by ID. Returns (nil, nil) if absent.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByUsernameOrEmail retrieves an account whose username or email
	// equals ident. Returns (nil, nil) if absent.
	GetByUsernameOrEmail(ctx context.Context, ident string) (*domain.User, error)
	// ExistsByUsernameOrEmail checks both fields in a single query.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// MigrateCredential sets the hashed credential and clears the
	// transitional plaintext credential in one update.
	MigrateCredential(ctx context.Context, id, passwordHash string) error
	// UpdateLastLogin records a successful authentication.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	// SetRole changes an account's role. Returns ErrNotMatched if absent.
	SetRole(ctx context.Context, id string, role domain.Role) error
	// SetStatus changes an account's status. Returns ErrNotMatched if absent.
	SetStatus(ctx context.Context, id string, status domain.Status) error
	// Delete removes an account. Returns ErrNotMatched if absent.
	Delete(ctx context.Context, id string) error
	// List returns a page of accounts, newest first.
	List(ctx context.Context, pq dto.PageQuery) ([]*domain.User, int64, error)
	// CountByStatus counts accounts with the given status; an empty
	// status counts all accounts.
	CountByStatus(ctx context.Context, status domain.Status) (int64, error)
}

// ErrNotMatched is returned by targeted updates and deletes when no
// document matched the filter.
var ErrNotMatched = errors.New("no document matched")

// SessionRepository defines the interface for server-side session storage
type SessionRepository interface {
	// Create stores the session with the given time-to-live. The write
	// must be acknowledged before Create returns.
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error
	// Get retrieves a session by ID. Returns (nil, nil) if absent or expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete removes a session immediately.
	Delete(ctx context.Context, id string) error
}
