package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user role
type Role string

const (
	RoleRegistered Role = "REGISTERED"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleRegistered || r == RoleAdmin
}

// Status represents account status
type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusDeactivated Status = "DEACTIVATED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusDeactivated
}

// User represents an account document. The bson field names match the
// collection written by earlier deployments of this application.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	// LegacyPassword is the transitional plaintext credential pending
	// migration. Cleared on first successful login once a hash exists.
	LegacyPassword string     `bson:"password,omitempty" json:"-"`
	Name           string     `bson:"name" json:"name"`
	Role           Role       `bson:"role" json:"role"`
	Status         Status     `bson:"status" json:"status"`
	Timezone       string     `bson:"tz,omitempty" json:"tz,omitempty"`
	LastLogin      *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Session represents a server-side session record (session auth mode).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Claims is the resolved identity attached to an authenticated request.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the administrator role.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
