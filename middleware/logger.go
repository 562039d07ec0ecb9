package middleware

import (
	"github.com/aishape/payment-webhook/utils"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
)

func RequestLogger() echo.MiddlewareFunc {
	return emw.RequestLoggerWithConfig(emw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v emw.RequestLoggerValues) error {
			event := utils.Logger.Info()
			if v.Error != nil || v.Status >= 500 {
				event = utils.Logger.Error().Err(v.Error)
			}
			event.
				Str("trace_id", utils.TraceIDFromContext(c.Request().Context())).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
