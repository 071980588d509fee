package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Identity is the acting user extracted from a validated access token.
type Identity struct {
	UserID  string
	Email   string
	IsStaff bool
}

// Middleware validates the Authorization header and stores the acting user
// in the request context. Requests without a valid access token are rejected.
func Middleware(manager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, manager)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(identityKey, Identity{UserID: claims.UserID, Email: claims.Email, IsStaff: claims.IsStaff})
		c.Next()
	}
}

// OptionalMiddleware resolves the acting user when a token is present but
// lets anonymous requests through. Read-mostly endpoints use it.
func OptionalMiddleware(manager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, manager); ok {
			c.Set(identityKey, Identity{UserID: claims.UserID, Email: claims.Email, IsStaff: claims.IsStaff})
		}
		c.Next()
	}
}

// StaffOnly rejects requests whose acting user is not staff.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := FromContext(c)
		if !ok || !identity.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

// FromContext returns the acting user stored by the middleware.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

func bearerClaims(c *gin.Context, manager *JWTManager) (*Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	claims, err := manager.ValidateAccessToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, false
	}
	return claims, true
}
