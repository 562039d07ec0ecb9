package middleware

import (
	"github.com/aishape/payment-webhook/utils"
	"github.com/labstack/echo/v4"
)

const maxTraceIDLength = 128

// TraceIDMiddleware propagates X-Trace-ID. Missing or unusable ids are
// replaced with a generated one, since the value ends up in every log line.
func TraceIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(utils.TraceIDHeader)
			if !validTraceID(traceID) {
				traceID = utils.GenerateTraceID()
			}

			ctx := utils.WithTraceID(c.Request().Context(), traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(utils.TraceIDHeader, traceID)

			return next(c)
		}
	}
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}
	return true
}
