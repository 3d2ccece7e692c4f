package brand

import (
	"log/slog"
	"net/http"
	"strconv"

	bs "carrental/service/brand"
	"carrental/util/httpx"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bs.Service
	Log *slog.Logger
}

func failFor(c echo.Context, code bs.ErrCode) error {
	switch code {
	case bs.ErrNotFound:
		return httpx.Fail(c, http.StatusNotFound, "brand not found", "id")
	case bs.ErrNameTaken:
		return httpx.Fail(c, http.StatusConflict, "a brand with that name already exists", "name")
	case bs.ErrLogoStore:
		return httpx.Fail(c, http.StatusInternalServerError, "logo could not be stored", "logo")
	}
	return httpx.Fail(c, http.StatusInternalServerError, "internal error", "internal error")
}

// POST /v1/brands (multipart: name, logo)
func (h *Controller) Create(c echo.Context) error {
	name := c.FormValue("name")
	if name == "" {
		return httpx.Fail(c, http.StatusBadRequest, "name is required", "name")
	}
	logo, err := httpx.FormFileBytes(c, "logo")
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "unreadable logo upload", err.Error())
	}
	if len(logo) == 0 {
		return httpx.Fail(c, http.StatusBadRequest, "logo file is required", "logo")
	}

	b, err := h.Svc.Create(c.Request().Context(), name, logo)
	if err != nil {
		if code := bs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("brand create failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not create brand", "internal error")
	}
	return httpx.OK(c, http.StatusCreated, "brand created", b)
}

// GET /v1/brands
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("brand list failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list brands", "internal error")
	}
	return httpx.OKList(c, "brands", rows, len(rows))
}

// GET /v1/brands/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	b, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if code := bs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("brand detail failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load brand", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "brand", b)
}

// PUT /v1/brands/:id (multipart: name?, logo?)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	logo, err := httpx.FormFileBytes(c, "logo")
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "unreadable logo upload", err.Error())
	}

	b, err := h.Svc.Update(c.Request().Context(), id, c.FormValue("name"), logo)
	if err != nil {
		if code := bs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("brand update failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not update brand", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "brand updated", b)
}

// DELETE /v1/brands/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if code := bs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("brand delete failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not delete brand", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "brand deleted", nil)
}
