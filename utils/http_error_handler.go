package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders errors that escape handlers (unknown routes,
// wrong methods, oversized bodies, recovered panics) in the webhook's
// status/reason shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		Logger.Error().Err(err).
			Str("trace_id", TraceIDFromContext(c.Request().Context())).
			Str("path", c.Path()).
			Msg("unhandled error")
		_ = HandleError(c, err)
		return
	}

	if he.Code >= http.StatusInternalServerError {
		_ = InternalError(c)
		return
	}

	message := http.StatusText(he.Code)
	if msg, ok := he.Message.(string); ok {
		message = msg
	}
	_ = Failed(c, he.Code, message)
}
