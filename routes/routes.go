package routes

import (
	"net/http"

	"github.com/aishape/payment-webhook/handlers"
	"github.com/aishape/payment-webhook/middleware"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	WebhookPath  = "/wayforpay_webhook"
	maxBodyBytes = "1M"
)

func Register(e *echo.Echo, handlers *handlers.Handlers) {
	e.Use(middleware.TraceIDMiddleware(), middleware.RequestLogger(), emw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Ok")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/docs/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, getOpenAPISpec())
	})

	RegisterWebhookRoutes(e, handlers)
}

func RegisterWebhookRoutes(e *echo.Echo, handlers *handlers.Handlers) {
	webhookHandler := handlers.Webhook()

	e.POST(WebhookPath, webhookHandler.ReceiveWayForPay, emw.BodyLimit(maxBodyBytes))
}

func statusResponse(description string, example map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"example": example,
			},
		},
	}
}

func getOpenAPISpec() map[string]interface{} {
	return map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "AIShape Payment Webhook API",
			"version":     "1.0.0",
			"description": "Receives WayForPay service-url notifications and delivers the paid plan to the customer's Telegram chat.",
		},
		"paths": map[string]interface{}{
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Service is healthy"},
					},
				},
			},
			WebhookPath: map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "WayForPay payment notification",
					"description": "The body is signed with HMAC-MD5 over all field values except merchantSignature, ordered by key and joined with ';'. clientEmail carries telegram_<chat id>.",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"merchantSignature"},
									"properties": map[string]interface{}{
										"merchantSignature": map[string]interface{}{"type": "string"},
										"transactionStatus": map[string]interface{}{"type": "string", "example": "Approved"},
										"clientEmail":       map[string]interface{}{"type": "string", "example": "telegram_12345"},
										"customerName":      map[string]interface{}{"type": "string"},
										"orderReference":    map[string]interface{}{"type": "string"},
									},
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": statusResponse("Notification accepted", map[string]interface{}{"status": "accept"}),
						"400": statusResponse("Missing signature, malformed payload or no Telegram ID", map[string]interface{}{"reason": "Missing signature"}),
						"403": statusResponse("Invalid signature", map[string]interface{}{"reason": "Invalid signature"}),
						"500": statusResponse("Document could not be delivered", map[string]interface{}{"status": "error"}),
					},
				},
			},
		},
	}
}
