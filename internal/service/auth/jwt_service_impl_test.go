package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nverra/storefront-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-at-least-32-chars",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()

	token, err := service.GenerateToken(ctx, 42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "a-different-secret-key-with-32-chars!!"
	otherService, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := otherService.GenerateToken(ctx, 1, false)
	require.NoError(t, err)

	_, err = service.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()

	refreshToken, err := service.GenerateRefreshToken(ctx, 42, false)
	require.NoError(t, err)

	_, err = service.ValidateToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	accessToken, err := service.GenerateToken(ctx, 42, false)
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := service.(*hmacJWTService)
	require.True(t, ok)

	issuedAt := time.Now().UTC()
	impl.timeFunc = func() time.Time { return issuedAt }

	token, err := service.GenerateToken(ctx, 42, false)
	require.NoError(t, err)

	// Still valid just before expiry
	impl.timeFunc = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = service.ValidateToken(ctx, token)
	assert.NoError(t, err)

	// Expired well past the lifetime plus the clock skew allowance
	impl.timeFunc = func() time.Time { return issuedAt.Add(63 * time.Minute) }
	_, err = service.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()

	token, err := service.GenerateRefreshToken(ctx, 7, false)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.False(t, claims.IsAdmin)
}
