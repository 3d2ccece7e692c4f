package contact

import (
	"net/http"

	ns "carrental/service/notify"
	"carrental/util/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ContactReq struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type Controller struct {
	Svc ns.Service
	V   *validator.Validate
}

// POST /v1/contact
func (h *Controller) Send(c echo.Context) error {
	var req ContactReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid JSON body", err.Error())
	}
	if err := h.V.Struct(req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "validation error", err.Error())
	}

	h.Svc.Contact(ns.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	return httpx.OK(c, http.StatusOK, "message received", nil)
}
