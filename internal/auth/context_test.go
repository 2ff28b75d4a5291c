package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAccessorsReadResolvedClaims(t *testing.T) {
	c := newContext()
	c.Set("store_id", "store-a")
	c.Set("user_id", "user-1")
	c.Set("user_role", "manager")

	assert.Equal(t, "store-a", GetStoreID(c))
	assert.Equal(t, "user-1", GetUserID(c))
	assert.Equal(t, "manager", GetRole(c))
}

func TestAccessorsDefaultToEmpty(t *testing.T) {
	c := newContext()

	assert.Empty(t, GetStoreID(c))
	assert.Empty(t, GetUserID(c))
	assert.Empty(t, GetRole(c))
}
