package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erendoru/panobu-api/internal/config"
	"github.com/erendoru/panobu-api/internal/domain"
)

func testUser(role domain.UserRole) *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Email: "test@panobu.com",
		Role:  role,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenExpiryMinutes: 60})
	user := testUser(domain.RoleAdvertiser)

	token, err := tm.Issue(user)
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdvertiser, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager(config.AuthConfig{JWTSecret: "secret-a", TokenExpiryMinutes: 60})
	verifier := NewTokenManager(config.AuthConfig{JWTSecret: "secret-b", TokenExpiryMinutes: 60})

	token, err := issuer.Issue(testUser(domain.RoleAdmin))
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenExpiryMinutes: 0})
	tm.expiry = -time.Minute

	token, err := tm.Issue(testUser(domain.RoleScreenOwner))
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenExpiryMinutes: 60})

	token, err := tm.Issue(testUser(domain.UserRole("SUPERUSER")))
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenExpiryMinutes: 60})

	_, err := tm.Validate("not-a-token")
	assert.Error(t, err)
}
