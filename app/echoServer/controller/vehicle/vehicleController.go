package vehicle

import (
	"log/slog"
	"net/http"
	"strconv"

	"carrental/model"
	vs "carrental/service/vehicle"
	"carrental/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc vs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func failFor(c echo.Context, code vs.ErrCode) error {
	switch code {
	case vs.ErrNotFound:
		return httpx.Fail(c, http.StatusNotFound, "vehicle not found", "id")
	case vs.ErrBrandNotFound:
		return httpx.Fail(c, http.StatusNotFound, "brand not found", "brand_id")
	case vs.ErrPlateTaken:
		return httpx.Fail(c, http.StatusConflict, "a vehicle with that plate already exists", "plate")
	case vs.ErrBadStatus:
		return httpx.Fail(c, http.StatusBadRequest, "status must be Available, Reserved or Maintenance", "status")
	}
	return httpx.Fail(c, http.StatusInternalServerError, "internal error", "internal error")
}

// POST /v1/vehicles
func (h *Controller) Create(c echo.Context) error {
	var req CreateVehicleReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	v := &model.Vehicle{
		Name: req.Name, Plate: req.Plate, BrandID: req.BrandID,
		Year: req.Year, Capacity: req.Capacity, Color: req.Color, Model: req.Model,
		EngineNumber: req.EngineNumber, ChassisNumber: req.ChassisNumber, VIN: req.VIN,
		Status: model.VehicleStatus(req.Status),
	}
	if err := h.Svc.Create(c.Request().Context(), v); err != nil {
		if code := vs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("vehicle create failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not create vehicle", "internal error")
	}
	return httpx.OK(c, http.StatusCreated, "vehicle created", v)
}

// GET /v1/vehicles?status=
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		if vs.Code(err) == vs.ErrBadStatus {
			return failFor(c, vs.ErrBadStatus)
		}
		h.Log.Error("vehicle list failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list vehicles", "internal error")
	}
	return httpx.OKList(c, "vehicles", rows, len(rows))
}

// GET /v1/vehicles/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	v, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if code := vs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("vehicle detail failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load vehicle", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "vehicle", v)
}

// PUT /v1/vehicles/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	var req UpdateVehicleReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	v := &model.Vehicle{
		ID:   id,
		Name: req.Name, Plate: req.Plate, BrandID: req.BrandID,
		Year: req.Year, Capacity: req.Capacity, Color: req.Color, Model: req.Model,
		EngineNumber: req.EngineNumber, ChassisNumber: req.ChassisNumber, VIN: req.VIN,
		Status: model.VehicleStatus(req.Status),
	}
	if err := h.Svc.Update(c.Request().Context(), v); err != nil {
		if code := vs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("vehicle update failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not update vehicle", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "vehicle updated", v)
}

// POST /v1/vehicles/:id/images (multipart: main, side)
func (h *Controller) UploadImages(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	main, err := httpx.FormFileBytes(c, "main")
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "unreadable image upload", err.Error())
	}
	side, err := httpx.FormFileBytes(c, "side")
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "unreadable image upload", err.Error())
	}
	if len(main) == 0 && len(side) == 0 {
		return httpx.Fail(c, http.StatusBadRequest, "at least one image file is required", "main")
	}

	v, err := h.Svc.UploadImages(c.Request().Context(), id, main, side)
	if err != nil {
		if code := vs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("vehicle image upload failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not store images", "image storage failed")
	}
	return httpx.OK(c, http.StatusOK, "vehicle images stored", v)
}

// DELETE /v1/vehicles/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if code := vs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("vehicle delete failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not delete vehicle", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "vehicle deleted", nil)
}
