package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyUserID is the key for storing the authenticated user in context.
	KeyUserID ContextKey = "user_id"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"

	// HeaderXTaskID names the background task an accepted intent runs in.
	HeaderXTaskID = "X-Task-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetUserID stores the authenticated user in echo.Context and in the request context.
func SetUserID(c echo.Context, userID string) {
	c.Set(string(KeyUserID), userID)
	c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), KeyUserID, userID)))
}

// GetUserID returns the authenticated user, or empty string when the request is anonymous.
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(string(KeyUserID)).(string); ok {
		return id
	}

	return GetUserIDFromContext(c.Request().Context())
}

// GetUserIDFromContext extracts the authenticated user from standard context.Context.
func GetUserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyUserID).(string); ok {
		return id
	}

	return ""
}

// Detach carries the request ID, logger and user of origin over to ctx.
// Background work started by a request uses it so its logs still correlate.
func Detach(ctx, origin context.Context) context.Context {
	if id := GetRequestIDFromContext(origin); id != "" {
		ctx = WithRequestID(ctx, id)
	}
	if logger := GetLogger(origin); logger != nil {
		ctx = WithLogger(ctx, logger)
	}
	if userID := GetUserIDFromContext(origin); userID != "" {
		ctx = context.WithValue(ctx, KeyUserID, userID)
	}

	return ctx
}
