// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/streamgraph/internal/logging"
)

// Logger is an HTTP middleware that logs one structured line per request.
//
// The line carries the request and session IDs through logging.FromContext,
// so it must run after chi's RequestID and the session middleware.
// Server errors log at error level and client errors at warn.
//
// Log fields:
//   - method, path, status
//   - bytes: response body size
//   - duration_ms: processing time
//   - ip: client IP as rewritten by TrustedRealIP
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		logger := logging.FromContext(r.Context())
		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"bytes", ww.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", r.RemoteAddr,
		}

		switch {
		case ww.status >= http.StatusInternalServerError:
			logger.Error("request", args...)
		case ww.status >= http.StatusBadRequest:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer, which
// the SSE patches need in order to flush.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
