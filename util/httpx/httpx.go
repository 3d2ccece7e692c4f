package httpx

import (
	"io"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var defaultClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Client is shared by all external collaborator repos.
func Client() *http.Client { return defaultClient }

// Envelope is the response shape every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// OKList always carries a count, zero included, so empty listings are
// distinguishable from omitted data.
func OKList(c echo.Context, message string, data any, count int) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Count: &count})
}

func Fail(c echo.Context, status int, message string, errMsg string) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Error: errMsg})
}

// FormFileBytes reads an optional multipart file field; a missing field
// yields nil bytes and no error.
func FormFileBytes(c echo.Context, name string) ([]byte, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
