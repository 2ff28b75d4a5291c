package auth

import (
	"github.com/labstack/echo/v4"
)

// GetStoreID returns the store the authenticated manager belongs to, as
// resolved by the auth middleware. Empty for admins and unauthenticated
// requests; the ledger trusts whatever store id it is handed.
func GetStoreID(c echo.Context) string {
	if val, ok := c.Get("store_id").(string); ok {
		return val
	}
	return ""
}

func GetUserID(c echo.Context) string {
	if val, ok := c.Get("user_id").(string); ok {
		return val
	}
	return ""
}

func GetRole(c echo.Context) string {
	if val, ok := c.Get("user_role").(string); ok {
		return val
	}
	return ""
}
