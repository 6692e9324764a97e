package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	tenantIDKey  contextKey = "tenant_id"
	userIDKey    contextKey = "user_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found.
// The returned logger carries trace_id/span_id when the context holds a valid span.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		l = zap.NewNop()
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}

// WithRequestID adds request ID to context and enriches the attached logger
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return enrich(context.WithValue(ctx, requestIDKey, requestID), zap.String("request_id", requestID))
}

// WithTenantID adds tenant ID to context and enriches the attached logger
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return enrich(context.WithValue(ctx, tenantIDKey, tenantID), zap.String("tenant_id", tenantID))
}

// WithUserID adds user ID to context and enriches the attached logger
func WithUserID(ctx context.Context, userID string) context.Context {
	return enrich(context.WithValue(ctx, userIDKey, userID), zap.String("user_id", userID))
}

func enrich(ctx context.Context, field zap.Field) context.Context {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return WithContext(ctx, l.With(field))
	}
	return ctx
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// GetTenantID retrieves tenant ID from context
func GetTenantID(ctx context.Context) string {
	v, _ := ctx.Value(tenantIDKey).(string)
	return v
}

// GetUserID retrieves user ID from context
func GetUserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}
