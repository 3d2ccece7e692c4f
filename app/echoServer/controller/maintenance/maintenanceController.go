package maintenance

import (
	"log/slog"
	"net/http"
	"strconv"

	"carrental/model"
	ms "carrental/service/maintenance"
	"carrental/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ms.Service
	V   *validator.Validate
	Log *slog.Logger
}

func failFor(c echo.Context, code ms.ErrCode) error {
	switch code {
	case ms.ErrNotFound:
		return httpx.Fail(c, http.StatusNotFound, "maintenance record not found", "id")
	case ms.ErrVehicleNotFound:
		return httpx.Fail(c, http.StatusNotFound, "vehicle not found", "vehicle_id")
	case ms.ErrBadStatus:
		return httpx.Fail(c, http.StatusBadRequest, "status must be Scheduled, InProgress, Completed or Cancelled", "status")
	}
	return httpx.Fail(c, http.StatusInternalServerError, "internal error", "internal error")
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/maintenances
func (h *Controller) Create(c echo.Context) error {
	var req CreateMaintenanceReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	m := &model.Maintenance{
		VehicleID:     req.VehicleID,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Cost:          req.Cost,
		Status:        model.MaintenanceStatus(req.Status),
	}
	if err := h.Svc.Create(c.Request().Context(), m); err != nil {
		if code := ms.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("maintenance create failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not create maintenance record", "internal error")
	}
	return httpx.OK(c, http.StatusCreated, "maintenance scheduled", m)
}

// GET /v1/maintenances
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("maintenance list failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list maintenance records", "internal error")
	}
	return httpx.OKList(c, "maintenance records", rows, len(rows))
}

// GET /v1/maintenances/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	m, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if code := ms.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("maintenance detail failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load maintenance record", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "maintenance record", m)
}

// GET /v1/vehicles/:id/maintenances
func (h *Controller) ByVehicle(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	rows, err := h.Svc.ByVehicle(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("maintenance by vehicle failed", "vehicle_id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list maintenance records", "internal error")
	}
	return httpx.OKList(c, "maintenance records", rows, len(rows))
}

// PUT /v1/maintenances/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	var req UpdateMaintenanceReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	m := &model.Maintenance{
		ID:            id,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Cost:          req.Cost,
	}
	if err := h.Svc.Update(c.Request().Context(), m); err != nil {
		if code := ms.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("maintenance update failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not update maintenance record", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "maintenance updated", m)
}

// PATCH /v1/maintenances/:id/status
func (h *Controller) SetStatus(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	var req SetStatusReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	m, err := h.Svc.SetStatus(c.Request().Context(), id, model.MaintenanceStatus(req.Status))
	if err != nil {
		if code := ms.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("maintenance status change failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not change maintenance status", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "maintenance status updated", m)
}

// DELETE /v1/maintenances/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if code := ms.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("maintenance delete failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not delete maintenance record", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "maintenance deleted", nil)
}
