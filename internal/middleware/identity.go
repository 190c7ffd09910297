package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRoles  = "roles"
)

// UserID returns the authenticated user's id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	if s, ok := c.Get(ctxUserID).(string); ok {
		return s
	}
	return ""
}

// Roles returns the role names carried by the caller's access token.
func Roles(c echo.Context) []string {
	if r, ok := c.Get(ctxRoles).([]string); ok {
		return r
	}
	return nil
}

// HasAnyRole reports whether the caller holds at least one of roles.
func HasAnyRole(c echo.Context, roles ...string) bool {
	for _, held := range Roles(c) {
		for _, want := range roles {
			if held == want {
				return true
			}
		}
	}
	return false
}

func deny(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

func unauthorized(c echo.Context, msg string) error {
	return deny(c, http.StatusUnauthorized, msg)
}
