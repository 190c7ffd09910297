// Package router mounts the API routes on echo.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seating/internal/handler"
	"github.com/iliyamo/office-seating/internal/middleware"
)

// Handlers bundles one handler per resource family.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Buildings *handler.BuildingHandler
	Layouts   *handler.LayoutHandler
	Walls     *handler.WallHandler
	Furniture *handler.FurnitureHandler
	Seats     *handler.SeatHandler
	Users     *handler.UserHandler
}

// Middleware holds the request filters the routes are mounted with.
// Everything but Auth may be nil. RateLimit runs after Auth so user-keyed
// buckets see the caller; AuthRateLimit guards the public auth routes.
type Middleware struct {
	Auth          echo.MiddlewareFunc
	RateLimit     echo.MiddlewareFunc
	AuthRateLimit echo.MiddlewareFunc
	Cache         echo.MiddlewareFunc
	Invalidate    echo.MiddlewareFunc
}

// Register mounts every route: health and auth are public, everything else
// under /api requires a token and passes the policy table.
func Register(e *echo.Echo, h Handlers, mw Middleware) {
	health := h.Health
	if health == nil {
		health = handler.NewHealthHandler(nil)
	}
	e.GET("/healthz", health.Live)
	e.GET("/readyz", health.Ready)
	registerAuth(e, h.Auth, mw.Auth, mw.AuthRateLimit)

	chain := []echo.MiddlewareFunc{mw.Auth}
	if mw.RateLimit != nil {
		chain = append(chain, mw.RateLimit)
	}
	chain = append(chain, middleware.Authorize(Policy()))
	if mw.Invalidate != nil {
		chain = append(chain, mw.Invalidate)
	}
	api := e.Group("/api", chain...)

	var cached []echo.MiddlewareFunc
	if mw.Cache != nil {
		cached = append(cached, mw.Cache)
	}
	registerFloorPlan(api, h, cached)
	registerUsers(api.Group("/users"), h.Users)
}

func registerAuth(e *echo.Echo, a *handler.AuthHandler, auth, limit echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if limit != nil {
		mw = append(mw, limit)
	}
	g := e.Group("/api/auth", mw...)
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, auth)
}
