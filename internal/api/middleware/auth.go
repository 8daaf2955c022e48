package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/auth"
	"github.com/erendoru/panobu-api/internal/domain"
)

const (
	claimsContextKey = "auth_claims"
	sessionHeader    = "X-Session-ID"
)

// AuthMiddleware validates the Bearer token and stores its claims in the
// request context. Requests without a valid token are rejected.
func AuthMiddleware(tm *auth.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tm)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware stores claims when a valid token is present but lets
// anonymous requests through. Used on cart routes, where identity may instead
// come from a client session header.
func OptionalAuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, tm); ok {
			c.Set(claimsContextKey, claims)
		}
		c.Next()
	}
}

// RequireRoles rejects authenticated requests whose role is not listed
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// GetClaims returns the authenticated claims from the gin context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// ResolveCartOwner derives the cart identity for the request: the
// authenticated user when a token is present, otherwise the anonymous session
// token from the X-Session-ID header. Exactly one side of the result is set.
func ResolveCartOwner(c *gin.Context) (domain.CartOwner, bool) {
	if claims, ok := GetClaims(c); ok {
		userID := claims.UserID
		return domain.CartOwner{UserID: &userID}, true
	}

	if sessionID := strings.TrimSpace(c.GetHeader(sessionHeader)); sessionID != "" {
		return domain.CartOwner{SessionID: &sessionID}, true
	}

	return domain.CartOwner{}, false
}

func bearerClaims(c *gin.Context, tm *auth.TokenManager) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	claims, err := tm.Validate(tokenString)
	if err != nil {
		return nil, false
	}

	return claims, true
}
