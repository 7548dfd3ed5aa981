package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/enterprisellm/orchestrator/internal/models"
)

// APIKeyAuth checks the configured header against the allowed key set.
// Disabled (nil handler passthrough) when enabled is false or no keys exist.
func APIKeyAuth(header string, keys []string, enabled bool) func(http.Handler) http.Handler {
	if header == "" {
		header = "X-API-Key"
	}

	return func(next http.Handler) http.Handler {
		if !enabled || len(keys) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(header)
			if got == "" {
				models.WriteError(w, http.StatusUnauthorized, "missing API key")
				return
			}
			for _, k := range keys {
				if subtle.ConstantTimeCompare([]byte(got), []byte(k)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}
			models.WriteError(w, http.StatusUnauthorized, "invalid API key")
		})
	}
}
