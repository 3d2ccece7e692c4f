package employee

import (
	"log/slog"
	"net/http"
	"strconv"

	"carrental/model"
	es "carrental/service/employee"
	"carrental/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc es.Service
	V   *validator.Validate
	Log *slog.Logger
}

func failFor(c echo.Context, code es.ErrCode) error {
	switch code {
	case es.ErrNotFound:
		return httpx.Fail(c, http.StatusNotFound, "employee not found", "id")
	case es.ErrEmailTaken:
		return httpx.Fail(c, http.StatusConflict, "email already in use", "email")
	case es.ErrBadRole:
		return httpx.Fail(c, http.StatusBadRequest, "role must be employee or manager", "role")
	}
	return httpx.Fail(c, http.StatusInternalServerError, "internal error", "internal error")
}

// POST /v1/employees
func (h *Controller) Create(c echo.Context) error {
	var req CreateEmployeeReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	e := &model.Employee{
		FirstName: req.FirstName, LastName: req.LastName,
		Email: req.Email, Phone: req.Phone, Role: req.Role,
	}
	if err := h.Svc.Create(c.Request().Context(), e, req.Password); err != nil {
		if code := es.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("employee create failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not create employee", "internal error")
	}
	return httpx.OK(c, http.StatusCreated, "employee created", e)
}

// GET /v1/employees
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("employee list failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list employees", "internal error")
	}
	return httpx.OKList(c, "employees", rows, len(rows))
}

// GET /v1/employees/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	e, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if code := es.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("employee detail failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load employee", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "employee", e)
}

// PUT /v1/employees/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}

	var req UpdateEmployeeReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	e := &model.Employee{
		ID:        id,
		FirstName: req.FirstName, LastName: req.LastName,
		Email: req.Email, Phone: req.Phone, Role: req.Role,
	}
	if err := h.Svc.Update(c.Request().Context(), e); err != nil {
		if code := es.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("employee update failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not update employee", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "employee updated", e)
}

// DELETE /v1/employees/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if code := es.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("employee delete failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not delete employee", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "employee deleted", nil)
}
