// Package api serves the obi vault queries over a read-only HTTP API.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const codeUnauthorized = "UNAUTHORIZED"

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware enforces Bearer token auth when enabled. Rejected requests
// get a 401 with an UNAUTHORIZED error body and a WWW-Authenticate challenge.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := bearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="obi"`)
				writeJSON(w, http.StatusUnauthorized, errResponse{
					Error: "missing or invalid bearer token",
					Code:  codeUnauthorized,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
