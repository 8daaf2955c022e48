package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/erendoru/panobu-api/internal/config"
	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/pkg/errors"
)

// Claims carries the authenticated identity inside a JWT
type Claims struct {
	UserID uuid.UUID       `json:"user_id"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates access tokens
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager creates a token manager from auth configuration
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		expiry: time.Duration(cfg.TokenExpiryMinutes) * time.Minute,
	}
}

// Issue creates a signed token for the given user
func (m *TokenManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a token string and returns its claims
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &errors.ErrUnauthorized{Message: "unexpected signing method"}
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, &errors.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &errors.ErrUnauthorized{Message: "invalid token claims"}
	}
	if !claims.Role.IsValid() {
		return nil, &errors.ErrUnauthorized{Message: "unknown role"}
	}

	return claims, nil
}
