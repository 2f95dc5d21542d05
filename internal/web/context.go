package web

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/JonMunkholm/streamgraph/internal/logging"
)

const (
	sessionCookieName = "sg_session"

	// sessionHeader lets API clients without a cookie jar pin a session.
	sessionHeader = "X-Session-ID"
)

type sessionIDKey struct{}

// sessionCookie assigns every browser a session ID and stores it in the
// request context. IDs that are not UUIDs are replaced.
func sessionCookie(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(sessionHeader)
			if !validSessionID(id) {
				id = ""
				if c, err := r.Cookie(sessionCookieName); err == nil && validSessionID(c.Value) {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionIDKey{}, id)
			ctx = logging.ContextWithSession(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validSessionID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// sessionID returns the ID assigned by sessionCookie.
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey{}).(string)
	return id
}
