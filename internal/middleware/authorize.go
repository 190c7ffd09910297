package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Rule lists the roles allowed on a route. When SelfParam is set, a caller
// whose id equals that path parameter is allowed regardless of role.
type Rule struct {
	Roles     []string
	SelfParam string
}

// Policy maps "METHOD /route/:pattern" to its rule. Routes without an entry
// only require authentication.
type Policy map[string]Rule

// Key builds the lookup key for a method and echo route pattern.
func Key(method, path string) string { return method + " " + path }

// Allows reports whether the rule admits the current caller.
func (r Rule) Allows(c echo.Context) bool {
	if r.SelfParam != "" {
		if id := UserID(c); id != "" && c.Param(r.SelfParam) == id {
			return true
		}
	}
	return HasAnyRole(c, r.Roles...)
}

// Authorize enforces p. It must run after JWTAuth.
func Authorize(p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule, ok := p[Key(c.Request().Method, c.Path())]
			if !ok || rule.Allows(c) {
				return next(c)
			}
			return deny(c, http.StatusForbidden, "Forbidden")
		}
	}
}
