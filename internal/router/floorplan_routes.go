package router

import (
	"github.com/labstack/echo/v4"
)

// registerFloorPlan mounts buildings, layouts, walls, furniture and seats.
// Reads go through the response cache; writes invalidate it.
func registerFloorPlan(api *echo.Group, h Handlers, cached []echo.MiddlewareFunc) {
	b := api.Group("/buildings")
	b.GET("", h.Buildings.List, cached...)
	b.GET("/:id", h.Buildings.Get, cached...)
	b.POST("", h.Buildings.Create)
	b.PUT("/:id", h.Buildings.Update)
	b.DELETE("/:id", h.Buildings.Delete)

	l := api.Group("/layouts")
	l.GET("", h.Layouts.List, cached...)
	l.GET("/:id", h.Layouts.Get, cached...)
	l.GET("/building/:buildingId", h.Layouts.ListByBuilding, cached...)
	l.POST("", h.Layouts.Create)
	l.PUT("/:id", h.Layouts.Update)
	l.DELETE("/:id", h.Layouts.Delete)

	w := api.Group("/walls")
	w.GET("", h.Walls.List, cached...)
	w.GET("/:id", h.Walls.Get, cached...)
	w.GET("/layout/:layoutId", h.Walls.ListByLayout, cached...)
	w.POST("", h.Walls.Create)
	w.PUT("/:id", h.Walls.Update)
	w.DELETE("/:id", h.Walls.Delete)

	f := api.Group("/furniture")
	f.GET("", h.Furniture.List, cached...)
	f.GET("/:id", h.Furniture.Get, cached...)
	f.GET("/layout/:layoutId", h.Furniture.ListByLayout, cached...)
	f.POST("", h.Furniture.Create)
	f.PUT("/:id", h.Furniture.Update)
	f.DELETE("/:id", h.Furniture.Delete)

	s := api.Group("/seats")
	s.GET("", h.Seats.List, cached...)
	s.GET("/:id", h.Seats.Get, cached...)
	s.GET("/layout/:layoutId", h.Seats.ListByLayout, cached...)
	s.GET("/layout/:layoutId/export", h.Seats.Export)
	s.GET("/:id/history", h.Seats.History)
	s.GET("/:id/qrcode", h.Seats.QRCode)
	s.POST("", h.Seats.Create)
	s.POST("/assign", h.Seats.Assign)
	s.POST("/:id/unassign", h.Seats.Unassign)
	s.PUT("/:id", h.Seats.Update)
	s.DELETE("/:id", h.Seats.Delete)
}
