package reservation

import (
	"log/slog"
	"net/http"
	"strconv"

	"carrental/app/echoServer/jwtx"
	"carrental/model"
	rs "carrental/service/reservation"
	"carrental/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func failFor(c echo.Context, code rs.ErrCode) error {
	switch code {
	case rs.ErrClientNotFound:
		return httpx.Fail(c, http.StatusNotFound, "client not found", "client_id")
	case rs.ErrVehicleNotFound:
		return httpx.Fail(c, http.StatusNotFound, "vehicle not found", "vehicle_id")
	case rs.ErrNotFound:
		return httpx.Fail(c, http.StatusNotFound, "reservation not found", "id")
	case rs.ErrBadDateRange:
		return httpx.Fail(c, http.StatusBadRequest, "start date must be before return date", "start_date")
	case rs.ErrBadPrice:
		return httpx.Fail(c, http.StatusBadRequest, "price per day must be positive", "price_per_day")
	case rs.ErrBadStatus:
		return httpx.Fail(c, http.StatusBadRequest, "status must be Pending, Active or Completed", "status")
	}
	return httpx.Fail(c, http.StatusInternalServerError, "internal error", "internal error")
}

// POST /v1/reservations
func (h *Controller) Create(c echo.Context) error {
	var req CreateReservationReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	// clients always book for themselves; staff may book for any client
	clientID := req.ClientID
	if !jwtx.IsStaff(c) {
		uid, err := jwtx.UserIDFromContext(c)
		if err != nil {
			return httpx.Fail(c, http.StatusUnauthorized, "unauthenticated", "session")
		}
		clientID = uid
	}
	if clientID <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "client_id is required", "client_id")
	}

	res, err := h.Svc.Create(c.Request().Context(), rs.CreateInput{
		ClientID:    clientID,
		VehicleID:   req.VehicleID,
		StartDate:   req.StartDate,
		ReturnDate:  req.ReturnDate,
		PricePerDay: req.PricePerDay,
		Status:      model.ReservationStatus(req.Status),
		Beneficiary: req.Beneficiary.toModel(),
	})
	if err != nil {
		if code := rs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("reservation create failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not create reservation", "internal error")
	}
	return httpx.OK(c, http.StatusCreated, "reservation created", res)
}

// PUT /v1/reservations/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	var req UpdateReservationReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	in := rs.UpdateInput{
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		StartDate:   req.StartDate,
		ReturnDate:  req.ReturnDate,
		PricePerDay: req.PricePerDay,
		Beneficiary: req.Beneficiary.toModel(),
	}
	if req.Status != nil {
		st := model.ReservationStatus(*req.Status)
		in.Status = &st
	}

	res, err := h.Svc.Update(c.Request().Context(), id, in)
	if err != nil {
		if code := rs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("reservation update failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not update reservation", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "reservation updated", res)
}

// DELETE /v1/reservations/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return httpx.Fail(c, http.StatusNotFound, "reservation not found", "id")
		}
		h.Log.Error("reservation delete failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not delete reservation", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "reservation deleted", nil)
}

// GET /v1/reservations
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("reservation list failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list reservations", "internal error")
	}
	return httpx.OKList(c, "reservations", rows, len(rows))
}

// GET /v1/reservations/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	res, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if rs.Code(err) == rs.ErrNotFound {
			return httpx.Fail(c, http.StatusNotFound, "reservation not found", "id")
		}
		h.Log.Error("reservation detail failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load reservation", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "reservation", res)
}

// GET /v1/reservations/vehicle/:vehicleId
func (h *Controller) ByVehicle(c echo.Context) error {
	vid, err := strconv.ParseInt(c.Param("vehicleId"), 10, 64)
	if err != nil || vid <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid vehicle id", "vehicleId")
	}

	rows, err := h.Svc.ByVehicle(c.Request().Context(), vid)
	if err != nil {
		h.Log.Error("reservations by vehicle failed", "vehicle_id", vid, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list reservations", "internal error")
	}
	return httpx.OKList(c, "reservations for vehicle", rows, len(rows))
}

// GET /v1/reservations/status/:status
func (h *Controller) ByStatus(c echo.Context) error {
	rows, err := h.Svc.ByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		if rs.Code(err) == rs.ErrBadStatus {
			return httpx.Fail(c, http.StatusBadRequest, "status must be Pending, Active or Completed", "status")
		}
		h.Log.Error("reservations by status failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list reservations", "internal error")
	}
	return httpx.OKList(c, "reservations by status", rows, len(rows))
}

// GET /v1/reservations/my-reservations
func (h *Controller) Mine(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return httpx.Fail(c, http.StatusUnauthorized, "unauthenticated", "session")
	}

	rows, err := h.Svc.Mine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my reservations failed", "client_id", uid, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list reservations", "internal error")
	}
	return httpx.OKList(c, "your reservations", rows, len(rows))
}
