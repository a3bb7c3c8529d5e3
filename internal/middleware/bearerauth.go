// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/parshpawar/ezoCodingTask/internal/models"
	"github.com/parshpawar/ezoCodingTask/internal/service"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenVerifier verifies a bearer token and confirms that its session
// is still live.
type TokenVerifier interface {
	ParseToken(tokenString string) (*service.Claims, error)
	Resolve(ctx context.Context, claims *service.Claims) (*models.Identity, error)
}

// BearerAuth enforces bearer token authentication.
//
// It extracts the token from the Authorization header, verifies its
// signature and expiry, and confirms the session it names has not been
// revoked. On success it stores the claims in the request context, so
// they can be used downstream as the authenticated caller.
func BearerAuth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			claims, err := verifier.ParseToken(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if _, err := verifier.Resolve(r.Context(), claims); err != nil {
				http.Error(w, "session revoked", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
// Returns an empty string when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// GetClaimsFromContext extracts the verified token claims from the
// request context. Returns nil if not found.
func GetClaimsFromContext(ctx context.Context) *service.Claims {
	val := ctx.Value(claimsKey)
	if c, ok := val.(*service.Claims); ok {
		return c
	}
	return nil
}
