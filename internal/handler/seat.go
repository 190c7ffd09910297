package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/service"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SeatHandler struct {
	Resource[dto.SeatDTO]
	seats *service.SeatService
}

func NewSeatHandler(svc *service.SeatService, log *zap.Logger, timeout time.Duration) *SeatHandler {
	return &SeatHandler{
		Resource: newResource[dto.SeatDTO](svc, "Seat", "/api/seats",
			func(d dto.SeatDTO) uint64 { return d.ID }, log, timeout),
		seats: svc,
	}
}

// ListByLayout handles GET /api/seats/layout/:layoutId.
func (h *SeatHandler) ListByLayout(c echo.Context) error {
	return h.listBy("layoutId", func(ctx context.Context, id uint64) (any, error) {
		return h.seats.ListByLayout(ctx, id)
	})(c)
}

// Assign handles POST /api/seats/assign.
func (h *SeatHandler) Assign(c echo.Context) error {
	var in dto.AssignSeatDTO
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.seats.Assign(ctx, in.SeatID, in.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Unassign handles POST /api/seats/:id/unassign.
func (h *SeatHandler) Unassign(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.seats.Unassign(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// History handles GET /api/seats/:id/history.
func (h *SeatHandler) History(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.seats.History(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Export handles GET /api/seats/layout/:layoutId/export.
func (h *SeatHandler) Export(c echo.Context) error {
	id, ok := pathID(c, "layoutId")
	if !ok {
		return badID(c)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	xlsx, err := h.seats.ExportLayoutRoster(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="layout-%d-seats.xlsx"`, id))
	return c.Blob(http.StatusOK, mimeXLSX, xlsx)
}

// QRCode handles GET /api/seats/:id/qrcode.
func (h *SeatHandler) QRCode(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	png, err := h.seats.Label(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
