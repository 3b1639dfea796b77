package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,32}$`)
)

// RegisterRequest represents registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"required"`
}

// Validate checks field formats beyond the binding tags.
func (r *RegisterRequest) Validate() (bool, string) {
	if !usernameRegex.MatchString(r.Username) {
		return false, "Username must be 3-32 characters (letters, digits, . _ -)"
	}
	if !emailRegex.MatchString(strings.TrimSpace(r.Email)) {
		return false, "Invalid email format"
	}
	// bcrypt rejects secrets over 72 bytes
	if len(r.Password) < 6 || len(r.Password) > 72 {
		return false, "Password must be 6-72 characters"
	}
	return true, ""
}

// LoginRequest represents login request. Username accepts either the
// username or the email address.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response. Token is empty in
// session mode, where the credential travels in a cookie instead.
type AuthResponse struct {
	Token string       `json:"token,omitempty"`
	User  UserResponse `json:"user"`
}

// UserResponse represents public account data. Credential fields are
// never part of this shape.
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Timezone  string     `json:"tz,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt string     `json:"createdAt"`
}

// NewUserResponse converts a User to its public representation.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Status:    string(u.Status),
		Timezone:  u.Timezone,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// UpdateRoleRequest changes an account's role (admin only).
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateStatusRequest changes an account's status (admin only).
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
