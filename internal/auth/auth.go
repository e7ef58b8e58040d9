// Package auth guards the serve-mode API with a single admin bearer key.
// The configured value is a bcrypt hash so the plaintext key never lives in
// the config file.
package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashKey returns the bcrypt hash of a plaintext admin key, suitable for the
// auth.admin_key_hash config value.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// AdminAuthMiddleware returns middleware that requires a bearer key matching
// the given bcrypt hash. An empty hash disables the check entirely, which is
// intended for local use.
func AdminAuthMiddleware(adminKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKeyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := extractBearerToken(r)
			if token == "" {
				writeUnauthorized(w, "missing or malformed authorization header")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(adminKeyHash), []byte(token)); err != nil {
				writeUnauthorized(w, "invalid admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
