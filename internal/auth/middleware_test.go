package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthedHandler(t *testing.T) (http.Handler, *int) {
	t.Helper()
	var gotUserID int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})
	return handler, &gotUserID
}

func TestMiddleware(t *testing.T) {
	ts := NewTokenService("test-secret", 15*time.Minute)
	token, err := ts.GenerateAccessToken(42, 0)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		handler, gotUserID := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		Middleware(ts)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, *gotUserID)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		handler, gotUserID := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		rec := httptest.NewRecorder()

		Middleware(ts)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, *gotUserID)
	})

	t.Run("missing token", func(t *testing.T) {
		handler, _ := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		Middleware(ts)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		handler, _ := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		Middleware(ts)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"invalid or expired token"}`, rec.Body.String())
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		handler, _ := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", token)
		rec := httptest.NewRecorder()

		Middleware(ts)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	ts := NewTokenService("test-secret", 15*time.Minute)

	t.Run("admin allowed", func(t *testing.T) {
		token, err := ts.GenerateAccessToken(42, RoleAdmin)
		require.NoError(t, err)

		handler, gotUserID := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		RoleMiddleware(ts, RoleAdmin)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, *gotUserID)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		token, err := ts.GenerateAccessToken(42, 0)
		require.NoError(t, err)

		handler, _ := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		RoleMiddleware(ts, RoleAdmin)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"insufficient permissions"}`, rec.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		handler, _ := newAuthedHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		RoleMiddleware(ts, RoleAdmin)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
