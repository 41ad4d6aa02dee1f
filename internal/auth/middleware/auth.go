// Package middleware provides bearer-token authentication for HTTP handlers
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sanyam-Ahuja/study-manager/internal/auth/service"
)

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware validates the access token from the Authorization header
// and attaches the userID to the request context.
//
// The header carries the raw token; a "Bearer " prefix is also accepted.
// A missing token yields 401, an invalid or expired one 403.
func AuthMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get("Authorization"))
			if after, found := strings.CutPrefix(token, "Bearer "); found {
				token = strings.TrimSpace(after)
			}

			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"access denied"}`))
				return
			}

			userID, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"invalid token"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}
