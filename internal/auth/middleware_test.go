package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestServer(t *testing.T, repo *mockUserRepo) (*JWTService, http.Handler) {
	t.Helper()
	tokenService, err := NewJWTService(testSecret)
	require.NoError(t, err)

	mw := NewMiddleware(tokenService, repo)

	protected := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		email, ok := GetUserEmailFromContext(r.Context())
		require.True(t, ok)

		assert.NotEqual(t, uuid.Nil, userID)
		w.Header().Set("X-User-Email", email)
		w.WriteHeader(http.StatusOK)
	}))

	return tokenService, protected
}

func TestRequireAuth_ValidToken(t *testing.T) {
	repo := newMockUserRepo()
	stored, err := repo.Create(t.Context(), "T", "t@example.com", "+71234567890", "hash")
	require.NoError(t, err)

	tokenService, protected := newAuthTestServer(t, repo)

	token, err := tokenService.CreateToken(stored.Email, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t@example.com", rec.Header().Get("X-User-Email"))
}

func TestRequireAuth_Rejections(t *testing.T) {
	repo := newMockUserRepo()
	_, err := repo.Create(t.Context(), "T", "t@example.com", "+71234567890", "hash")
	require.NoError(t, err)

	tokenService, protected := newAuthTestServer(t, repo)

	otherService, err := NewJWTService([]byte("a-different-secret-entirely"))
	require.NoError(t, err)

	validToken, err := tokenService.CreateToken("t@example.com", time.Minute)
	require.NoError(t, err)
	expiredToken, err := tokenService.CreateToken("t@example.com", -time.Minute)
	require.NoError(t, err)
	foreignToken, err := otherService.CreateToken("t@example.com", time.Minute)
	require.NoError(t, err)
	unknownUserToken, err := tokenService.CreateToken("nobody@example.com", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic " + validToken},
		{name: "no scheme", header: validToken},
		{name: "expired token", header: "Bearer " + expiredToken},
		{name: "wrong signing key", header: "Bearer " + foreignToken},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "unknown subject", header: "Bearer " + unknownUserToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
