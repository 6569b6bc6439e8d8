package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/pkg/token"
)

type contextKey string

const (
	emailKey  contextKey = "auth.email"
	userIDKey contextKey = "auth.user_id"
)

// Auth returns a middleware that requires a valid bearer token and puts
// the authenticated identity on the request context.
func Auth(tokens *token.Maker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Error(w, http.StatusUnauthorized, "Authorization required")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Error(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, claims.Email)
			ctx = context.WithValue(ctx, userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the authenticated email, if any
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
