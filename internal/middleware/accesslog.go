package middleware

import (
	"time"

	"github.com/Guimenn/mobiliai-inventory/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AccessLog writes one structured line per completed request.
func AccessLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		logger.FromEcho(c).Info("HTTP Request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.RealIP()),
		)

		return err
	}
}
