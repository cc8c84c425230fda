package logging

import (
	"context"

	"go.uber.org/zap"
)

type requestCtxKey struct{}
type sessionCtxKey struct{}

// WithRequestID stores an HTTP request id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestCtxKey{}, id)
}

// RequestIDFromContext returns the request id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestCtxKey{}).(string); ok {
		return v
	}
	return ""
}

// WithSessionID stores a coaching session id in the context.
func WithSessionID(ctx context.Context, id int64) context.Context {
	if id == 0 {
		return ctx
	}
	return context.WithValue(ctx, sessionCtxKey{}, id)
}

// SessionIDFromContext returns the session id, or 0 when absent.
func SessionIDFromContext(ctx context.Context) int64 {
	if v, ok := ctx.Value(sessionCtxKey{}).(int64); ok {
		return v
	}
	return 0
}

// ContextFields extracts correlation data from a context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request.id", requestID))
	}
	if sessionID := SessionIDFromContext(ctx); sessionID != 0 {
		fields = append(fields, zap.Int64("session.id", sessionID))
	}
	return fields
}
