package auth

import (
	"log/slog"
	"net/http"
	"time"

	"carrental/app/echoServer/jwtx"
	"carrental/model"
	authsvc "carrental/service/auth"
	"carrental/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

// POST /v1/auth/register
func (h *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	client, token, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return httpx.Fail(c, http.StatusConflict, "email already registered", "email")
		default:
			h.Log.Error("register failed", "err", err)
			return httpx.Fail(c, http.StatusInternalServerError, "registration failed", "internal error")
		}
	}

	setSessionCookie(c, token)
	return httpx.OK(c, http.StatusCreated, "client registered", echo.Map{
		"client": client,
		"token":  token,
	})
}

// POST /v1/auth/login
func (h *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	id, role, token, err := h.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return httpx.Fail(c, http.StatusUnauthorized, "invalid email or password", "credentials")
		default:
			h.Log.Error("login failed", "err", err)
			return httpx.Fail(c, http.StatusInternalServerError, "login failed", "internal error")
		}
	}

	setSessionCookie(c, token)
	return httpx.OK(c, http.StatusOK, "login success", echo.Map{
		"id":    id,
		"role":  role,
		"token": token,
	})
}

// POST /v1/auth/password-recovery
func (h *Controller) PasswordRecovery(c echo.Context) error {
	var req RecoveryReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	if err := h.Svc.RecoverPassword(c.Request().Context(), req.Email); err != nil {
		if authsvc.Code(err) == authsvc.ErrNotFound {
			return httpx.Fail(c, http.StatusNotFound, "no account for that email", "email")
		}
		h.Log.Error("password recovery failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "recovery failed", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "recovery code sent", nil)
}

// POST /v1/auth/password-reset
func (h *Controller) PasswordReset(c echo.Context) error {
	var req ResetReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	if err := h.Svc.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrBadCode:
			return httpx.Fail(c, http.StatusBadRequest, "invalid or expired code", "code")
		case authsvc.ErrNotFound:
			return httpx.Fail(c, http.StatusNotFound, "no account for that email", "email")
		default:
			h.Log.Error("password reset failed", "err", err)
			return httpx.Fail(c, http.StatusInternalServerError, "reset failed", "internal error")
		}
	}
	return httpx.OK(c, http.StatusOK, "password updated", nil)
}

// PUT /v1/auth/password (authenticated)
func (h *Controller) ChangePassword(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return httpx.Fail(c, http.StatusUnauthorized, "unauthenticated", "session")
	}

	var req ChangePasswordReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	if err := h.Svc.ChangePassword(c.Request().Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return httpx.Fail(c, http.StatusUnauthorized, "current password does not match", "old_password")
		case authsvc.ErrNotFound:
			return httpx.Fail(c, http.StatusNotFound, "account not found", "id")
		default:
			h.Log.Error("password change failed", "err", err)
			return httpx.Fail(c, http.StatusInternalServerError, "change failed", "internal error")
		}
	}
	return httpx.OK(c, http.StatusOK, "password updated", nil)
}
