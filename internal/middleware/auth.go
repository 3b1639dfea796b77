package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/response"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

const identityKey = "identity"

// RequireAuth resolves the caller's identity from an Authorization
// bearer header, falling back to the session cookie, and attaches it to
// the context. Unauthenticated requests are rejected with 401.
func RequireAuth(resolver service.IdentityIssuer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		proof := extractProof(c, cookieName)
		if proof == "" {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := resolver.Resolve(c.Request.Context(), proof)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired credentials")
			c.Abort()
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Identity(c)
		if !ok {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}
		if !claims.IsAdmin() {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the claims attached by RequireAuth.
func Identity(c *gin.Context) (*domain.Claims, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*domain.Claims)
	return claims, ok
}

// ExtractProof returns the raw identity proof of the request, bearer
// header preferred, cookie fallback. Empty when unauthenticated.
func ExtractProof(c *gin.Context, cookieName string) string {
	return extractProof(c, cookieName)
}

func extractProof(c *gin.Context, cookieName string) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v
		}
	}
	return ""
}
