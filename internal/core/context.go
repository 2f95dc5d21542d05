package core

import "context"

type contextKey string

const ctxKeyOrigin contextKey = "upload_origin"

// Origin describes who sent an upload. It only feeds log lines.
type Origin struct {
	IP        string
	UserAgent string
}

// ContextWithOrigin attaches the uploader's address and user agent.
func ContextWithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, ctxKeyOrigin, o)
}

// OriginFromContext returns the Origin stored by ContextWithOrigin, or the
// zero value.
func OriginFromContext(ctx context.Context) Origin {
	if v, ok := ctx.Value(ctxKeyOrigin).(Origin); ok {
		return v
	}
	return Origin{}
}
