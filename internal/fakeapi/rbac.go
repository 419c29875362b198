package fakeapi

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

const msgForbidden = "Access denied. Insufficient permissions."

// RBAC lets a request through Auth only when its role is one of roles.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, ok := c.Get(ctxRole).(domain.Role); ok && slices.Contains(roles, role) {
				return next(c)
			}
			return c.JSON(http.StatusForbidden, errorResponse{Error: msgForbidden})
		}
	}
}
