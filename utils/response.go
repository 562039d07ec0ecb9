package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	StatusAccept = "accept"
	StatusError  = "error"
)

// StatusResponse is the acknowledgement body WayForPay reads back.
type StatusResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// RejectResponse is returned when the request cannot be authenticated.
type RejectResponse struct {
	Reason string `json:"reason"`
}

func HandleError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var (
		baseErr error
		message string
	)

	if wrappedErr, ok := IsWrappedError(err); ok {
		message = wrappedErr.GetMessage()
		baseErr = wrappedErr.Unwrap()
	} else {
		message = err.Error()
		baseErr = err
	}

	switch {
	case errors.Is(baseErr, ErrBadRequest):
		return Failed(c, http.StatusBadRequest, message)
	case errors.Is(baseErr, ErrForbidden):
		return Reject(c, http.StatusForbidden, message)
	case errors.Is(baseErr, ErrInternal):
		fallthrough
	default:
		return InternalError(c)
	}
}

func Accept(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: StatusAccept})
}

func Reject(c echo.Context, code int, reason string) error {
	return c.JSON(code, RejectResponse{Reason: reason})
}

func Failed(c echo.Context, code int, reason string) error {
	return c.JSON(code, StatusResponse{Status: StatusError, Reason: reason})
}

func InternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, StatusResponse{Status: StatusError})
}
