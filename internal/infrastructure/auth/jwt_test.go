package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		RefreshSecret:          "test-refresh-secret-for-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "invoicing-test",
		MaxRefreshCount:        5,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := testJWTService()
	businessID := uuid.New()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		BusinessID: businessID,
		UserID:     userID,
		Email:      "dana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, businessID.String(), claims.BusinessID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	gotBusinessID, err := claims.GetBusinessUUID()
	require.NoError(t, err)
	assert.Equal(t, businessID, gotBusinessID)
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	service := testJWTService()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		BusinessID: uuid.New(),
		UserID:     uuid.New(),
	})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	service := testJWTService()

	_, err := service.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	service := testJWTService()
	businessID := uuid.New()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		BusinessID: businessID,
		UserID:     userID,
		Email:      "dana@example.com",
	})
	require.NoError(t, err)

	newPair, err := service.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)

	claims, err := service.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, businessID.String(), claims.BusinessID)

	refreshClaims, err := service.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestJWTService_MaxRefreshExceeded(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "invoicing-test",
		MaxRefreshCount:        1,
	})

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		BusinessID: uuid.New(),
		UserID:     uuid.New(),
	})
	require.NoError(t, err)

	pair, err = service.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	_, err = service.RefreshTokenPair(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}
