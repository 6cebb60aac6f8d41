package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/infrastructure/auth"
	"github.com/invoicing/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-which-is-long-enough",
		RefreshSecret:          "test-refresh-secret-which-is-long-enough",
		Issuer:                 "invoicing-backend-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		MaxRefreshCount:        10,
	})
}

func newTestRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"business_id": GetJWTBusinessID(c),
			"user_id":     GetJWTUserID(c),
		})
	})
	r.GET("/public", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func issueTokenPair(t *testing.T, svc *auth.JWTService) (*auth.TokenPair, uuid.UUID, uuid.UUID) {
	businessID := uuid.New()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		BusinessID: businessID,
		UserID:     userID,
		Email:      "owner@example.com",
	})
	require.NoError(t, err)
	return pair, businessID, userID
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Run("accepts valid bearer token", func(t *testing.T) {
		svc := newTestJWTService()
		pair, businessID, _ := issueTokenPair(t, svc)
		router := newTestRouter(JWTMiddlewareConfig{JWTService: svc})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), businessID.String())
	})

	t.Run("rejects missing authorization header", func(t *testing.T) {
		router := newTestRouter(JWTMiddlewareConfig{JWTService: newTestJWTService()})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		router := newTestRouter(JWTMiddlewareConfig{JWTService: newTestJWTService()})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("rejects refresh token on access endpoints", func(t *testing.T) {
		svc := newTestJWTService()
		pair, _, _ := issueTokenPair(t, svc)
		router := newTestRouter(JWTMiddlewareConfig{JWTService: svc})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects blacklisted token", func(t *testing.T) {
		svc := newTestJWTService()
		pair, _, _ := issueTokenPair(t, svc)
		blacklist := auth.NewInMemoryTokenBlacklist()

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

		router := newTestRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_REVOKED")
	})

	t.Run("rejects tokens issued before user invalidation", func(t *testing.T) {
		svc := newTestJWTService()
		pair, _, userID := issueTokenPair(t, svc)
		blacklist := auth.NewInMemoryTokenBlacklist()

		// Invalidation moment is after the token's issuance
		time.Sleep(1100 * time.Millisecond)
		require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), userID.String(), time.Hour))

		router := newTestRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skips configured public paths", func(t *testing.T) {
		router := newTestRouter(JWTMiddlewareConfig{
			JWTService: newTestJWTService(),
			SkipPaths:  []string{"/public"},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
