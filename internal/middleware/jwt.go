package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seating/internal/utils"
)

// JWTAuth validates a Bearer access token and stores the caller's id, email
// and roles in the request context.
func JWTAuth(settings utils.TokenSettings) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "Missing bearer token")
			}
			claims, err := utils.ParseAccessToken(settings, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
			if err != nil {
				return unauthorized(c, "Invalid token")
			}
			c.Set(ctxUserID, claims.Subject)
			c.Set(ctxEmail, claims.Email)
			c.Set(ctxRoles, claims.Roles)
			return next(c)
		}
	}
}
