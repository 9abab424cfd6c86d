package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gestion-astreinte-backend/internal/auth"
	"gestion-astreinte-backend/internal/model"
)

const claimsKey = "authClaims"

// BearerAuth verifies the Authorization header and stores the token claims
// in the request context. Requests without a valid token are rejected; there
// is no client-side-only guarding here, the server is the enforcement point.
func BearerAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Mount after BearerAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the authenticated claims, or nil on unauthenticated
// routes.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// ScopedServiceID returns the service restriction for the caller: nil for
// admins (unscoped), the secretary's own service otherwise.
func ScopedServiceID(c *gin.Context) *int64 {
	claims := ClaimsFrom(c)
	if claims == nil || claims.Role == model.RoleAdmin {
		return nil
	}
	if claims.ServiceID == nil {
		// A secretary without an assigned service sees nothing, not
		// everything.
		zero := int64(0)
		return &zero
	}
	return claims.ServiceID
}
