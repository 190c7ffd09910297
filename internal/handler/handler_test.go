package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/service"
)

func TestValidatorMessages(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&dto.RegisterDTO{Email: "nope", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
	assert.Contains(t, err.Error(), "firstName is required")

	assert.NoError(t, v.Validate(&dto.BuildingDTO{Name: "HQ"}))
}

func TestFailMapsServiceErrors(t *testing.T) {
	a := newAPI(zap.NewNop(), 0)
	cases := []struct {
		err  error
		code int
		body string
	}{
		{&service.Error{Kind: service.ErrNotFound, Message: "Seat not found"}, http.StatusNotFound, `{"message":"Seat not found"}`},
		{&service.Error{Kind: service.ErrConflict, Message: "taken"}, http.StatusBadRequest, `{"message":"taken"}`},
		{&service.Error{Kind: service.ErrValidation, Message: "bad"}, http.StatusBadRequest, `{"message":"bad"}`},
		{&service.Error{Kind: service.ErrUnauthorized, Message: "who"}, http.StatusUnauthorized, `{"message":"who"}`},
		{service.ErrForbidden, http.StatusForbidden, `{"message":"forbidden"}`},
		{errors.New("db exploded"), http.StatusInternalServerError, `{"message":"An unexpected error occurred"}`},
	}
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, a.fail(c, tc.err))
		assert.Equal(t, tc.code, rec.Code)
		assert.JSONEq(t, tc.body, rec.Body.String())
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	e.GET("/boom", func(echo.Context) error { return errors.New("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"An unexpected error occurred"}`, rec.Body.String())
}

func TestPathID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	for raw, want := range map[string]bool{"7": true, "0": false, "-1": false, "x": false} {
		c.SetParamValues(raw)
		_, ok := pathID(c, "id")
		assert.Equal(t, want, ok, raw)
	}
}

func TestReadinessReportsFailingProbe(t *testing.T) {
	h := NewHealthHandler(map[string]Probe{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.Ready(e.NewContext(httptest.NewRequest(http.MethodGet, "/readyz", nil), rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"database":"ok","redis":"connection refused"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, NewHealthHandler(nil).Ready(e.NewContext(httptest.NewRequest(http.MethodGet, "/readyz", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
