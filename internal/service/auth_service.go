package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
	"github.com/GabrielBaezJ/travel-brain/internal/telemetry"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionNotFound    = errors.New("session not found")
)

// AuthServiceConfig holds auth service configuration
type AuthServiceConfig struct {
	BcryptCost int
}

// AuthService handles registration, login and identity resolution
type AuthService struct {
	users  repository.UserRepository
	issuer IdentityIssuer
	config AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, issuer IdentityIssuer, config AuthServiceConfig) *AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, issuer: issuer, config: config}
}

// Register creates a new account and authenticates it immediately
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (string, *domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         domain.RoleRegistered,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique indexes close the window between the existence
		// check and the insert.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", nil, ErrUserExists
		}
		return "", nil, err
	}

	proof, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return proof, user, nil
}

// Login authenticates by username or email plus password. The response
// never distinguishes an unknown account from a wrong password.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, *domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.users.GetByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !s.verifyPassword(ctx, user, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		return "", nil, ErrUserInactive
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID.Hex(), now); err != nil {
		logger.Get().Warn("failed to record last login",
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
	}
	user.LastLogin = &now

	proof, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return proof, user, nil
}

// verifyPassword checks the password against the stored hash, or against
// the transitional plaintext credential for accounts that predate
// hashing. A plaintext match upgrades the account to a bcrypt hash.
func (s *AuthService) verifyPassword(ctx context.Context, user *domain.User, password string) bool {
	if user.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}

	if user.LegacyPassword == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user.LegacyPassword), []byte(password)) != 1 {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		logger.Get().Error("failed to hash migrated credential",
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
		return true
	}
	// A failed persist is logged but does not block the login; the
	// migration retries on the next one.
	if err := s.users.MigrateCredential(ctx, user.ID.Hex(), string(hash)); err != nil {
		logger.Get().Error("failed to persist migrated credential",
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
	} else {
		user.PasswordHash = string(hash)
		user.LegacyPassword = ""
	}
	return true
}

// Me returns the freshest account state for an authenticated identity
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Me")
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Logout revokes the identity proof where the auth mode supports it
func (s *AuthService) Logout(ctx context.Context, proof string) error {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Logout")
	defer span.End()

	return s.issuer.Revoke(ctx, proof)
}

// Resolve validates an identity proof and returns the claims it carries
func (s *AuthService) Resolve(ctx context.Context, proof string) (*domain.Claims, error) {
	return s.issuer.Resolve(ctx, proof)
}
