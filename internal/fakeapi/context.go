package fakeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

// identity extracts the claims injected by the Auth middleware. A missing id
// means the route was mounted without Auth.
func identity(c echo.Context) (int64, domain.Role, error) {
	id, _ := c.Get(ctxUserID).(int64)
	role, _ := c.Get(ctxRole).(domain.Role)
	if id == 0 || role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, role, nil
}
