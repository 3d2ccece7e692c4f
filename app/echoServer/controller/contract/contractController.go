package contract

import (
	"log/slog"
	"net/http"
	"strconv"

	cs "carrental/service/contract"
	"carrental/util/httpx"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cs.Service
	Log *slog.Logger
}

func failFor(c echo.Context, code cs.ErrCode) error {
	switch code {
	case cs.ErrNotFound:
		return httpx.Fail(c, http.StatusNotFound, "contract not found", "id")
	case cs.ErrTerminal:
		return httpx.Fail(c, http.StatusConflict, "contract already finalized or annulled", "status")
	case cs.ErrOrphaned:
		return httpx.Fail(c, http.StatusConflict, "contract source records no longer exist", "reservation_id")
	case cs.ErrAlreadyExists:
		return httpx.Fail(c, http.StatusConflict, "a contract already exists for that reservation", "reservation_id")
	}
	return httpx.Fail(c, http.StatusInternalServerError, "internal error", "internal error")
}

func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// GET /v1/contracts
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("contract list failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not list contracts", "internal error")
	}
	return httpx.OKList(c, "contracts", rows, len(rows))
}

// GET /v1/contracts/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	row, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("contract detail failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load contract", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "contract", row)
}

// GET /v1/contracts/reservation/:reservationId
func (h *Controller) ByReservation(c echo.Context) error {
	id, ok := parseID(c, "reservationId")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid reservation id", "reservationId")
	}
	row, err := h.Svc.ByReservation(c.Request().Context(), id)
	if err != nil {
		if cs.Code(err) == cs.ErrNotFound {
			return httpx.Fail(c, http.StatusNotFound, "no contract for that reservation", "reservationId")
		}
		h.Log.Error("contract by reservation failed", "reservation_id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not load contract", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "contract", row)
}

// PUT /v1/contracts/:id/finalize
func (h *Controller) Finalize(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	row, err := h.Svc.Finalize(c.Request().Context(), id)
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("contract finalize failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not finalize contract", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "contract finalized", row)
}

// PUT /v1/contracts/:id/annul
func (h *Controller) Annul(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	row, err := h.Svc.Annul(c.Request().Context(), id)
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("contract annul failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not annul contract", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "contract annulled", row)
}

// POST /v1/contracts/:id/regenerate-pdf
func (h *Controller) RegeneratePdf(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return httpx.Fail(c, http.StatusBadRequest, "invalid id", "id")
	}
	row, err := h.Svc.RegeneratePdf(c.Request().Context(), id)
	if err != nil {
		if code := cs.Code(err); code != "" {
			return failFor(c, code)
		}
		h.Log.Error("contract pdf regeneration failed", "id", id, "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not regenerate document", "internal error")
	}
	return httpx.OK(c, http.StatusOK, "contract document regenerated", row)
}
