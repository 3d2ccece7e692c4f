package client

import (
	"log/slog"
	"net/http"
	"strconv"

	"carrental/app/echoServer/jwtx"
	cs "carrental/service/client"
	"carrental/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func failFor(c echo.Context, code cs.ErrCode) error {
	switch code {
	case cs.ErrNotFound:
		return httpx.Fail(c, http.StatusNotFound, "client not found", "id")
	case cs.ErrEmailTaken:
		return httpx.Fail(c, http.StatusConflict, "email already in use", "email")
	case cs.ErrBadCode:
		return httpx.Fail(c, http.StatusBadRequest, "invalid or expired code", "code")
	case cs.ErrDocStore:
		return httpx.Fail(c, http.StatusInternalServerError, "documents could not be stored", "documents")
	}
	return httpx.Fail(c, http.StatusInternalServerError, "internal error", "internal error")
}

// targetID resolves which client record the call refers to: staff may
// address any id, clients only themselves.
func (h *Controller) targetID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if jwtx.IsStaff(c) {
		return id, nil
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil || uid != id {
		return 0, echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return id, nil
}

// GET /v1/clients (staff)
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("client list failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list clients", "internal error")
	}
	return httpx.OKList(c, "clients", rows, len(rows))
}

// GET /v1/clients/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := h.targetID(c)
	if err != nil {
		return err
	}
	row, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("client detail failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load client", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "client", row)
}

// PUT /v1/clients/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := h.targetID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	row, err := h.Svc.UpdateProfile(c.Request().Context(), id, cs.UpdateProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Address:        req.Address,
		DocumentNumber: req.DocumentNumber,
		LicenseNumber:  req.LicenseNumber,
	})
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("client update failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not update client", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "client updated", row)
}

// POST /v1/clients/:id/email-change
func (h *Controller) RequestEmailChange(c echo.Context) error {
	id, err := h.targetID(c)
	if err != nil {
		return err
	}

	var req EmailChangeReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	if err := h.Svc.RequestEmailChange(c.Request().Context(), id, req.NewEmail); err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("email change request failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not start email change", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "confirmation code sent", nil)
}

// POST /v1/clients/:id/email-change/confirm
func (h *Controller) ConfirmEmailChange(c echo.Context) error {
	id, err := h.targetID(c)
	if err != nil {
		return err
	}

	var req EmailChangeConfirmReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	row, err := h.Svc.ConfirmEmailChange(c.Request().Context(), id, req.Code)
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("email change confirm failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not update email", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "email updated", row)
}

// POST /v1/clients/:id/documents (multipart: front, back)
func (h *Controller) UploadDocuments(c echo.Context) error {
	id, err := h.targetID(c)
	if err != nil {
		return err
	}

	front, err := httpx.FormFileBytes(c, "front")
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "unreadable document upload", err.Error())
	}
	back, err := httpx.FormFileBytes(c, "back")
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "unreadable document upload", err.Error())
	}
	if len(front) == 0 && len(back) == 0 {
		return httpx.Fail(c, http.StatusBadRequest, "at least one document image is required", "front")
	}

	row, err := h.Svc.UploadDocuments(c.Request().Context(), id, front, back)
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("client document upload failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not store documents", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "documents stored", row)
}

// DELETE /v1/clients/:id (staff)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("client delete failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not delete client", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "client deleted", nil)
}
