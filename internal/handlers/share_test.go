package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idscan/internal/middleware"
)

func signShareToken(t *testing.T, cardID string, ttl time.Duration) string {
	t.Helper()
	claims := shareClaims{
		CardID: cardID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.Secret)
	require.NoError(t, err)
	return signed
}

func sharedCardRequest(id, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/card-info/"+id+"?token="+token, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetSharedCardInfoRejectsBadTokens(t *testing.T) {
	middleware.Secret = []byte("test-secret")

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetSharedCardInfo(rec, sharedCardRequest("1", ""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetSharedCardInfo(rec, sharedCardRequest("1", "not-a-jwt"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetSharedCardInfo(rec, sharedCardRequest("1", signShareToken(t, "1", -time.Minute)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for another card", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetSharedCardInfo(rec, sharedCardRequest("2", signShareToken(t, "1", time.Hour)))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
