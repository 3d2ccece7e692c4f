package report

import (
	"log/slog"
	"net/http"

	rs "carrental/service/report"
	"carrental/util/httpx"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	Log *slog.Logger
}

// GET /v1/reservations/new-clients-per-day
func (h *Controller) NewClientsPerDay(c echo.Context) error {
	rows, err := h.Svc.NewClientsPerDay(c.Request().Context())
	if err != nil {
		h.Log.Error("new clients report failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not build report", "internal error")
	}
	return httpx.OKList(c, "new clients per day", rows, len(rows))
}

// GET /v1/reservations/most-rented-brands
func (h *Controller) MostRentedBrands(c echo.Context) error {
	rows, err := h.Svc.MostRentedBrands(c.Request().Context())
	if err != nil {
		h.Log.Error("brand rentals report failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not build report", "internal error")
	}
	return httpx.OKList(c, "most rented brands", rows, len(rows))
}

// GET /v1/reservations/most-rented-models
func (h *Controller) MostRentedModels(c echo.Context) error {
	rows, err := h.Svc.MostRentedModels(c.Request().Context())
	if err != nil {
		h.Log.Error("model rentals report failed", "err", err)
		return httpx.Fail(c, http.StatusInternalServerError, "could not build report", "internal error")
	}
	return httpx.OKList(c, "most rented models", rows, len(rows))
}
