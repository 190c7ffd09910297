package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/service"
)

type BuildingHandler struct {
	Resource[dto.BuildingDTO]
}

func NewBuildingHandler(svc *service.BuildingService, log *zap.Logger, timeout time.Duration) *BuildingHandler {
	return &BuildingHandler{newResource[dto.BuildingDTO](svc, "Building", "/api/buildings",
		func(d dto.BuildingDTO) uint64 { return d.ID }, log, timeout)}
}

type LayoutHandler struct {
	Resource[dto.LayoutDTO]
	layouts *service.LayoutService
}

func NewLayoutHandler(svc *service.LayoutService, log *zap.Logger, timeout time.Duration) *LayoutHandler {
	return &LayoutHandler{
		Resource: newResource[dto.LayoutDTO](svc, "Layout", "/api/layouts",
			func(d dto.LayoutDTO) uint64 { return d.ID }, log, timeout),
		layouts: svc,
	}
}

// ListByBuilding handles GET /api/layouts/building/:buildingId.
func (h *LayoutHandler) ListByBuilding(c echo.Context) error {
	return h.listBy("buildingId", func(ctx context.Context, id uint64) (any, error) {
		return h.layouts.ListByBuilding(ctx, id)
	})(c)
}

type WallHandler struct {
	Resource[dto.WallDTO]
	walls *service.WallService
}

func NewWallHandler(svc *service.WallService, log *zap.Logger, timeout time.Duration) *WallHandler {
	return &WallHandler{
		Resource: newResource[dto.WallDTO](svc, "Wall", "/api/walls",
			func(d dto.WallDTO) uint64 { return d.ID }, log, timeout),
		walls: svc,
	}
}

// ListByLayout handles GET /api/walls/layout/:layoutId.
func (h *WallHandler) ListByLayout(c echo.Context) error {
	return h.listBy("layoutId", func(ctx context.Context, id uint64) (any, error) {
		return h.walls.ListByLayout(ctx, id)
	})(c)
}

type FurnitureHandler struct {
	Resource[dto.FurnitureDTO]
	furniture *service.FurnitureService
}

func NewFurnitureHandler(svc *service.FurnitureService, log *zap.Logger, timeout time.Duration) *FurnitureHandler {
	return &FurnitureHandler{
		Resource: newResource[dto.FurnitureDTO](svc, "Furniture", "/api/furniture",
			func(d dto.FurnitureDTO) uint64 { return d.ID }, log, timeout),
		furniture: svc,
	}
}

// ListByLayout handles GET /api/furniture/layout/:layoutId.
func (h *FurnitureHandler) ListByLayout(c echo.Context) error {
	return h.listBy("layoutId", func(ctx context.Context, id uint64) (any, error) {
		return h.furniture.ListByLayout(ctx, id)
	})(c)
}
