package middleware

import (
	"net/http"
	"net/http/httptest"
	"snapgram/internal/config"
	"snapgram/internal/models"
	"snapgram/internal/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() service.AuthService {
	return service.NewAuthService(nil, &config.Config{
		AccessTokenSecret:    "access-secret",
		RefreshTokenSecret:   "refresh-secret",
		AccessTokenDuration:  2 * time.Hour,
		RefreshTokenDuration: 720 * time.Hour,
	})
}

func TestRequireAuth(t *testing.T) {
	auth := newAuthService()

	var gotClaims *service.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = service.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	protected := RequireAuth(auth)(next)

	t.Run("missing header is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"Unauthorized!"}`, rec.Body.String())
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad token is 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"message":"Forbidden!"}`, rec.Body.String())
	})

	t.Run("refresh token on the access route is 403", func(t *testing.T) {
		refreshToken, err := auth.IssueRefreshToken(&models.User{UserID: "user-1", Username: "alice"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+refreshToken)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token passes identity to the handler", func(t *testing.T) {
		accessToken, err := auth.IssueAccessToken(&models.User{UserID: "user-1", Username: "alice"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "user-1", gotClaims.UserID)
		assert.Equal(t, "alice", gotClaims.Username)
	})
}
