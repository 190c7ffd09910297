package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/middleware"
	"github.com/iliyamo/office-seating/internal/service"
	"github.com/iliyamo/office-seating/internal/utils"
)

type AuthHandler struct {
	api
	auth   *service.AuthService
	tokens utils.TokenSettings
}

// NewAuthHandler needs the token settings to read an optional bearer token
// on logout, which is not behind the auth middleware.
func NewAuthHandler(auth *service.AuthService, tokens utils.TokenSettings, log *zap.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{api: newAPI(log, timeout), auth: auth, tokens: tokens}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var in dto.LoginDTO
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.auth.Login(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var in dto.RegisterDTO
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.auth.Register(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/users/"+out.User.ID)
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var in dto.RefreshDTO
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.auth.Refresh(ctx, strings.TrimSpace(in.RefreshToken))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Logout revokes the refresh token in the body. Without one, a valid bearer
// token ends every session of its user.
func (h *AuthHandler) Logout(c echo.Context) error {
	var in dto.RefreshDTO
	_ = c.Bind(&in)
	raw := strings.TrimSpace(in.RefreshToken)

	ctx, cancel := h.ctx(c)
	defer cancel()
	if raw != "" {
		if err := h.auth.Logout(ctx, raw); err != nil {
			return h.fail(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return message(c, http.StatusBadRequest, "Provide a refresh token or an Authorization header")
	}
	claims, err := utils.ParseAccessToken(h.tokens, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return message(c, http.StatusUnauthorized, "Invalid token")
	}
	if err := h.auth.LogoutAll(ctx, claims.Subject); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.auth.Me(ctx, middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
