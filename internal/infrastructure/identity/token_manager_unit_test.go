//go:build unit
// +build unit

package identity

import (
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthSettings() *config.AuthSettings {
	return &config.AuthSettings{
		JWTSecret:              "unit-test-signing-secret",
		TokenTTLMinutes:        60,
		LoginRateLimit:         5,
		LoginRateWindowSeconds: 300,
	}
}

func testUser() *users.User {
	return &users.User{
		ID:           uuid.NewString(),
		Username:     "rmadrigal",
		Role:         users.RoleRadiologist,
		PasswordHash: "irrelevant",
		CreatedAt:    time.Now(),
	}
}

func TestJwtTokenManager_IssueAndVerify(t *testing.T) {
	manager, err := NewJwtTokenManager(testAuthSettings())
	require.NoError(t, err)

	user := testUser()
	token, expiresIn, err := manager.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, users.RoleRadiologist, claims.Role)
}

func TestJwtTokenManager_Verify_Garbage(t *testing.T) {
	manager, err := NewJwtTokenManager(testAuthSettings())
	require.NoError(t, err)

	_, err = manager.Verify("not.a.token")
	assert.Error(t, err)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestJwtTokenManager_Verify_WrongSecret(t *testing.T) {
	issuer, err := NewJwtTokenManager(testAuthSettings())
	require.NoError(t, err)

	otherSettings := testAuthSettings()
	otherSettings.JWTSecret = "another-signing-secret-entirely"
	verifier, err := NewJwtTokenManager(otherSettings)
	require.NoError(t, err)

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestJwtTokenManager_Verify_Expired(t *testing.T) {
	settings := testAuthSettings()
	manager := &jwtTokenManager{
		secret: []byte(settings.JWTSecret),
		ttl:    -time.Minute,
	}

	token, _, err := manager.Issue(testUser())
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestNewJwtTokenManager_MissingSecret(t *testing.T) {
	settings := testAuthSettings()
	settings.JWTSecret = ""

	_, err := NewJwtTokenManager(settings)
	assert.Error(t, err)
}
