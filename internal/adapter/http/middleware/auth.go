package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// TokenContextKey is the context key for the raw bearer token
	TokenContextKey ContextKey = "token"
)

// BearerToken rejects requests without an "Authorization: Bearer <token>"
// header and stores the raw token in the request context. Verification
// happens in the use cases, which own the token verifier.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "missing authorization header")
			return
		}

		// Parse Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			unauthorized(w, "invalid authorization header format")
			return
		}

		ctx := context.WithValue(r.Context(), TokenContextKey, strings.TrimSpace(parts[1]))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext returns the bearer token stored by BearerToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenContextKey).(string)
	return token, ok && token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
