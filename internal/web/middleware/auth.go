package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/streamgraph/internal/config"
	"github.com/JonMunkholm/streamgraph/internal/core"
	"github.com/JonMunkholm/streamgraph/internal/logging"
)

// APIKeyHeader carries the key checked by APIKeyAuth.
const APIKeyHeader = "X-API-Key"

var (
	errMissingAPIKey = errors.New("missing api key")
	errInvalidAPIKey = errors.New("invalid api key")
)

// APIKeyAuth returns middleware that validates X-API-Key against configured keys.
// If RequireAPIKey is false, all requests pass through.
// If RequireAPIKey is true but no keys are configured, all requests are rejected.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				reject(w, r, errMissingAPIKey, http.StatusUnauthorized)
				return
			}

			if !isValidAPIKey(apiKey, cfg.APIKeys) {
				reject(w, r, errInvalidAPIKey, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, err error, status int) {
	logging.FromContext(r.Context()).Warn("auth: rejected",
		"reason", err.Error(),
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)

	msg := core.MapError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   err.Error(),
		"message": msg.Message,
		"action":  msg.Action,
		"code":    msg.Code,
	})
}

// isValidAPIKey checks if the provided key matches any configured key.
// Every key is compared in constant time so the timing does not reveal
// which key matched, or whether any did.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}
