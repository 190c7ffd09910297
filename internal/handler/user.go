package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/repository"
	"github.com/iliyamo/office-seating/internal/service"
)

type UserHandler struct {
	api
	users *service.UserService
	auth  *service.AuthService
}

func NewUserHandler(users *service.UserService, auth *service.AuthService, log *zap.Logger, timeout time.Duration) *UserHandler {
	return &UserHandler{api: newAPI(log, timeout), users: users, auth: auth}
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.users.List(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Search handles GET /api/users/search?searchTerm=&department=&hasSeat=.
func (h *UserHandler) Search(c echo.Context) error {
	f := repository.UserFilter{
		Term:       c.QueryParam("searchTerm"),
		Department: c.QueryParam("department"),
	}
	if raw := strings.TrimSpace(c.QueryParam("hasSeat")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return message(c, http.StatusBadRequest, "hasSeat must be true or false")
		}
		f.HasSeat = &v
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.users.Search(ctx, f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.users.Get(ctx, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Update(c echo.Context) error {
	var in dto.UserUpdateDTO
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.users.Update(ctx, c.Param("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	if !h.users.Delete(ctx, c.Param("id")) {
		return message(c, http.StatusNotFound, "User not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) Activate(c echo.Context) error {
	return h.setActive(c, h.users.Activate, "User activated successfully")
}

func (h *UserHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, h.users.Deactivate, "User deactivated successfully")
}

func (h *UserHandler) setActive(c echo.Context, fn func(context.Context, string) (dto.UserDTO, error), done string) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	if _, err := fn(ctx, c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return message(c, http.StatusOK, done)
}

// AssignRole handles POST /api/users/:id/roles/:roleName.
func (h *UserHandler) AssignRole(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	role := c.Param("roleName")
	if err := h.auth.AssignRole(ctx, c.Param("id"), role); err != nil {
		return h.fail(c, err)
	}
	return message(c, http.StatusOK, "Role "+role+" assigned successfully")
}

// RemoveRole handles DELETE /api/users/:id/roles/:roleName.
func (h *UserHandler) RemoveRole(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	role := c.Param("roleName")
	if err := h.auth.RemoveRole(ctx, c.Param("id"), role); err != nil {
		return h.fail(c, err)
	}
	return message(c, http.StatusOK, "Role "+role+" removed successfully")
}
