// Package handler holds the echo handlers of the floor plan API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/service"
)

// DefaultTimeout bounds the service call made by each request.
const DefaultTimeout = 5 * time.Second

// api is embedded by every handler.
type api struct {
	log     *zap.Logger
	timeout time.Duration
}

func newAPI(log *zap.Logger, timeout time.Duration) api {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return api{log: log, timeout: timeout}
}

func (a api) ctx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), a.timeout)
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// fail maps service errors to statuses. Anything unclassified is logged and
// answered with a generic 500.
func (a api) fail(c echo.Context, err error) error {
	var se *service.Error
	msg := err.Error()
	if errors.As(err, &se) {
		msg = se.Message
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		return message(c, http.StatusNotFound, msg)
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		return message(c, http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrUnauthorized):
		return message(c, http.StatusUnauthorized, msg)
	case errors.Is(err, service.ErrForbidden):
		return message(c, http.StatusForbidden, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return message(c, http.StatusServiceUnavailable, "The request timed out")
	}
	a.log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err))
	return message(c, http.StatusInternalServerError, "An unexpected error occurred")
}

// bind decodes the JSON body into v and validates it. A failure comes back
// as a 400 *echo.HTTPError for ErrorHandler to render; nothing is written
// here, so callers must return it unchanged.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func badID(c echo.Context) error {
	return message(c, http.StatusBadRequest, "Invalid id")
}
