// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/shopapp-backend/internal/config"
)

func testConfig(expiry time.Duration) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "ShopApp Backend"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-0123456789abcdef0123456789",
			AccessTokenExpiry: expiry,
		},
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := NewJWTManager(testConfig(time.Hour))

	token, err := manager.GenerateAccessToken(42, "Jane Doe")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, "user:42", claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager(testConfig(-time.Minute))

	token, err := manager.GenerateAccessToken(1, "Jane Doe")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig(time.Hour))
	token, err := manager.GenerateAccessToken(1, "Jane Doe")
	require.NoError(t, err)

	other := NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "ShopApp Backend"},
		JWT: config.JWTConfig{
			Secret:            "another-secret-key-0123456789abcdef012345",
			AccessTokenExpiry: time.Hour,
		},
	})
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
}
