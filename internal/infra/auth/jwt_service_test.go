package auth

import (
	"testing"
	"time"

	"pawsync/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.TokenTTLMinutes = 30

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, jwtService.TokenDuration())

	roles := []string{"user", "volunteer"}
	token, err := jwtService.GenerateToken("user-1", roles)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, roles, claims.Roles)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	_, err = jwtService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	otherCfg := newTestConfig()
	otherCfg.SecretKey.Access = "another_secret_key_that_does_not_match"
	verifier, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := issuer.GenerateToken("user-1", nil)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	impl := svc.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := impl.GenerateToken("user-1", nil)
	require.NoError(t, err)

	impl.now = time.Now
	_, err = impl.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RequiresSecretAndUser(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)

	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)
	_, err = svc.GenerateToken("", nil)
	assert.Error(t, err)
}
