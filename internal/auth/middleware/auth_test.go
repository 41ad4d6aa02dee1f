package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanyam-Ahuja/study-manager/internal/auth/service"
)

func TestAuthMiddleware(t *testing.T) {
	tg := service.NewTokenGenerator("test-secret", time.Hour)

	validToken, err := tg.GenerateToken(42)
	require.NoError(t, err)

	expiredToken, err := service.NewTokenGenerator("test-secret", -time.Minute).GenerateToken(42)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID int
	}{
		{
			name:           "raw token",
			authHeader:     validToken,
			expectedStatus: http.StatusOK,
			expectedUserID: 42,
		},
		{
			name:           "bearer prefixed token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
			expectedUserID: 42,
		},
		{
			name:           "missing token",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			authHeader:     "not-a-token",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired token",
			authHeader:     expiredToken,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "token signed with another secret",
			authHeader:     mustToken(t, "other-secret"),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/subjects", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tg)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.expectedUserID, gotUserID)
			} else {
				assert.False(t, called)
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	userID, ok := GetUserID(req.Context())

	assert.False(t, ok)
	assert.Zero(t, userID)
}

// mustToken signs a token for user 42 with the given secret
func mustToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := service.NewTokenGenerator(secret, time.Hour).GenerateToken(42)
	require.NoError(t, err)
	return token
}
