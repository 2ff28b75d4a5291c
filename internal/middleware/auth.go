package middleware

import (
	"net/http"
	"strings"

	"github.com/Guimenn/mobiliai-inventory/pkg/jwtutil"
	"github.com/Guimenn/mobiliai-inventory/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Auth validates the bearer token and resolves the actor's store claim into
// the request context. The ledger itself never inspects tokens; it trusts
// the store id placed here.
func Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		if claims.StoreID != "" {
			c.Set("store_id", claims.StoreID)
		}

		return next(c)
	}
}
