package http

import "context"

type contextKey string

const (
	requestIDContextKey contextKey = "wikimark/request-id"
	callerContextKey    contextKey = "wikimark/caller-id"
)

// RequestIDFromContext extracts the request identifier from the context
// when available.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if value, ok := ctx.Value(requestIDContextKey).(string); ok {
		return value
	}
	return ""
}

// CallerFromContext extracts the authenticated caller's user ID from the
// context, or empty for anonymous requests. Handlers pass this value
// explicitly into every service operation.
func CallerFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if value, ok := ctx.Value(callerContextKey).(string); ok {
		return value
	}
	return ""
}
