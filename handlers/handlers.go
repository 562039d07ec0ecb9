package handlers

import (
	service "github.com/aishape/payment-webhook/services"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		services: services,
	}
}

func (h *Handlers) Webhook() WebhookHandler {
	return newWebhookHandler(h.services.Config.SecretKey, h.services.Webhook())
}
