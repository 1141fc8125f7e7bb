package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/mpopescu/phonebook/internal/auth"
)

type contextKey string

const usernameKey contextKey = "username"

// TokenVerifier validates a session token and returns its claims.
// Satisfied by auth.JWTManager.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth is the gate in front of every protected route. It pulls the bearer
// token out of the Authorization header, verifies it, and stores the
// authenticated username in the request context. A missing header, a
// malformed token, a bad signature, and an expired token all get the same
// 401; the downstream handler is never invoked.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSON(w, http.StatusUnauthorized, respUnauthorized)
				return
			}

			// A literal "Bearer " prefix is stripped when present; a bare
			// token is accepted as-is.
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			claims, err := verifier.Verify(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, respUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext extracts the authenticated username from the request
// context. Returns the empty string when the Auth middleware did not run.
func UsernameFromContext(ctx context.Context) string {
	if username, ok := ctx.Value(usernameKey).(string); ok {
		return username
	}
	return ""
}
