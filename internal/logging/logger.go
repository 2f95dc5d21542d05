// Package logging provides structured logging configuration using log/slog.
//
// Request-scoped loggers pick up chi's request ID so every entry written
// while serving an upload or a tooltip can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w. Split out from Setup so tests can
// capture output.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type sessionKey struct{}

// ContextWithSession stores the session ID so loggers built from ctx carry it.
func ContextWithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFromContext returns the session ID stored by ContextWithSession.
func SessionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey{}).(string); ok {
		return v
	}
	return ""
}

// FromContext returns a logger enriched with request context.
//
// Adds request_id when chi's RequestID middleware ran, and session_id when
// the web layer attached one.
//
//	logger := logging.FromContext(r.Context())
//	logger.Info("dataset replaced", "rows", n)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if sid := SessionFromContext(ctx); sid != "" {
		logger = logger.With("session_id", sid)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
//	uploadLogger := logging.WithFields(ctx,
//	    "file", fileName,
//	    "generation", gen,
//	)
//	uploadLogger.Info("read started")
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
