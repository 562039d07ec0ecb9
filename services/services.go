package services

import (
	"github.com/aishape/payment-webhook/config"
	"github.com/aishape/payment-webhook/documents"
	"github.com/aishape/payment-webhook/providers"
	"github.com/aishape/payment-webhook/store"
)

type Services struct {
	Config     *config.Config
	Renderer   documents.Renderer
	Sender     providers.DocumentSender
	Deliveries store.DeliveryStore
}

func NewServices(cfg *config.Config, renderer documents.Renderer, sender providers.DocumentSender, deliveries store.DeliveryStore) *Services {
	if deliveries == nil {
		deliveries = store.NoopDeliveryStore{}
	}
	return &Services{
		Config:     cfg,
		Renderer:   renderer,
		Sender:     sender,
		Deliveries: deliveries,
	}
}
