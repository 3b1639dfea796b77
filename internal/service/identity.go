package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
)

// IdentityIssuer abstracts how an authenticated identity is materialized
// and later resolved from a proof string. Two implementations exist: a
// stateless JWT issuer and a server-side session issuer.
type IdentityIssuer interface {
	// Issue creates a proof of identity for the user (a signed token or
	// a session ID).
	Issue(ctx context.Context, user *domain.User) (string, error)
	// Resolve validates a proof and returns the identity it carries.
	Resolve(ctx context.Context, proof string) (*domain.Claims, error)
	// Revoke invalidates a proof where the backend supports it.
	Revoke(ctx context.Context, proof string) error
}

// JWTIssuer issues stateless HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer creates a new JWTIssuer
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user's identity
func (i *JWTIssuer) Issue(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Resolve validates a signed token and extracts its identity
func (i *JWTIssuer) Resolve(ctx context.Context, proof string) (*domain.Claims, error) {
	token, err := jwt.Parse(proof, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	return &domain.Claims{
		UserID:   sub,
		Username: username,
		Role:     domain.Role(role),
	}, nil
}

// Revoke is a no-op: stateless tokens expire on their own
func (i *JWTIssuer) Revoke(ctx context.Context, proof string) error {
	return nil
}

// SessionIssuer issues server-side sessions stored in Redis.
type SessionIssuer struct {
	sessions repository.SessionRepository
	ttl      time.Duration
}

// NewSessionIssuer creates a new SessionIssuer
func NewSessionIssuer(sessions repository.SessionRepository, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{sessions: sessions, ttl: ttl}
}

// Issue creates a session and returns its ID. The session write is
// acknowledged before the ID is handed out.
func (i *SessionIssuer) Issue(ctx context.Context, user *domain.User) (string, error) {
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID.Hex(),
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	if err := i.sessions.Create(ctx, session, i.ttl); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return session.ID, nil
}

// Resolve looks up a session by ID
func (i *SessionIssuer) Resolve(ctx context.Context, proof string) (*domain.Claims, error) {
	session, err := i.sessions.Get(ctx, proof)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return &domain.Claims{
		UserID:   session.UserID,
		Username: session.Username,
		Role:     session.Role,
	}, nil
}

// Revoke deletes the session. The error is surfaced so callers do not
// report a logout that did not happen.
func (i *SessionIssuer) Revoke(ctx context.Context, proof string) error {
	return i.sessions.Delete(ctx, proof)
}
