package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seating/internal/handler"
)

func registerUsers(g *echo.Group, u *handler.UserHandler) {
	g.GET("", u.List)
	g.GET("/search", u.Search)
	g.GET("/:id", u.Get)
	g.PUT("/:id", u.Update)
	g.DELETE("/:id", u.Delete)
	g.POST("/:id/activate", u.Activate)
	g.POST("/:id/deactivate", u.Deactivate)
	g.POST("/:id/roles/:roleName", u.AssignRole)
	g.DELETE("/:id/roles/:roleName", u.RemoveRole)
}
