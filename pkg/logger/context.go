package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

const loggerKey contextKey = "logger"

// FromContext retrieves the request-scoped logger from the context.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return l
}

// WithContext attaches a logger to the context.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromEcho retrieves the request-scoped logger set by the middleware.
func FromEcho(c echo.Context) *zap.Logger {
	l, ok := c.Get("logger").(*zap.Logger)
	if !ok {
		return GetLogger()
	}
	return l
}
