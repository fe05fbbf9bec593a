package httpx

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body. Callers branch on Success and must
// not assume Data is present otherwise.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail writes a failure envelope with the given user-facing message.
func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}

// Error maps a domain error onto the envelope. The fallback message is used
// for unexpected errors (store failures, programming errors); those must be
// logged by the caller before reaching here.
func Error(c echo.Context, err error, fallback string) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, ErrConflict):
		status = http.StatusConflict
	}
	return Fail(c, status, UserMessage(err, fallback))
}
