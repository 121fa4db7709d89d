package middleware

import (
	"context"
	"log/slog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for the acting user ID.
	UserIDKey contextKey = "user_id"
	// RequestIDKey is the context key for the request ID.
	RequestIDKey contextKey = "request_id"
	loggerKey    contextKey = "logger"
)

// GetUserID extracts the acting user ID from the context.
// Returns 0 if not found.
func GetUserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(UserIDKey).(int64)
	return userID
}

// GetRequestID extracts the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}

// Logger returns the request-scoped logger, or slog's default logger outside
// of a request.
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
