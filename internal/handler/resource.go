package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CRUD is the service shape shared by the floor plan entities.
type CRUD[D any] interface {
	List(ctx context.Context) ([]D, error)
	Get(ctx context.Context, id uint64) (D, error)
	Create(ctx context.Context, in D) (D, error)
	Update(ctx context.Context, id uint64, in D) (D, error)
	Delete(ctx context.Context, id uint64) bool
}

// Resource serves list/get/create/update/delete for one entity. basePath
// prefixes the Location header of created entities.
type Resource[D any] struct {
	api
	svc      CRUD[D]
	name     string
	basePath string
	idOf     func(D) uint64
}

func newResource[D any](svc CRUD[D], name, basePath string, idOf func(D) uint64, log *zap.Logger, timeout time.Duration) Resource[D] {
	return Resource[D]{api: newAPI(log, timeout), svc: svc, name: name, basePath: basePath, idOf: idOf}
}

func (h *Resource[D]) List(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	list, err := h.svc.List(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Resource[D]) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.Get(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Resource[D]) Create(c echo.Context) error {
	var in D
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.Create(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s/%d", h.basePath, h.idOf(out)))
	return c.JSON(http.StatusCreated, out)
}

// Update rejects a body whose id disagrees with the path. A zero body id is
// taken to mean the path id.
func (h *Resource[D]) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	var in D
	if err := bind(c, &in); err != nil {
		return err
	}
	if bodyID := h.idOf(in); bodyID != 0 && bodyID != id {
		return message(c, http.StatusBadRequest, "ID mismatch")
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.Update(ctx, id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Resource[D]) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	if !h.svc.Delete(ctx, id) {
		return message(c, http.StatusNotFound, h.name+" not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// listBy serves GET .../{param}/:value lists scoped to a parent id.
func (a api) listBy(param string, fn func(ctx context.Context, parentID uint64) (any, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		parentID, ok := pathID(c, param)
		if !ok {
			return badID(c)
		}
		ctx, cancel := a.ctx(c)
		defer cancel()
		out, err := fn(ctx, parentID)
		if err != nil {
			return a.fail(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}
