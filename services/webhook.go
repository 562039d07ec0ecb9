package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aishape/payment-webhook/documents"
	"github.com/aishape/payment-webhook/monitoring"
	"github.com/aishape/payment-webhook/pkg/wayforpay"
	"github.com/aishape/payment-webhook/providers"
	"github.com/aishape/payment-webhook/store"
	"github.com/aishape/payment-webhook/utils"
)

// clientEmail carries "telegram_<chat id>" instead of an address.
const telegramPrefix = "telegram_"

const (
	reasonNoTelegramID      = "No Telegram ID"
	reasonInvalidTelegramID = "Invalid Telegram ID"
)

type WebhookService interface {
	// FulfillPayment delivers the plan for an approved, verified payment.
	FulfillPayment(ctx context.Context, payload wayforpay.Payload) error
}

type webhookService struct {
	renderer   documents.Renderer
	sender     providers.DocumentSender
	deliveries store.DeliveryStore
}

func (s *Services) Webhook() WebhookService {
	return &webhookService{
		renderer:   s.Renderer,
		sender:     s.Sender,
		deliveries: s.Deliveries,
	}
}

func (ws *webhookService) FulfillPayment(ctx context.Context, payload wayforpay.Payload) error {
	orderRef := payload.String(wayforpay.FieldOrderReference)
	log := utils.LoggerFromContext(ctx).With().Str("order_reference", orderRef).Logger()

	chatID, err := ParseTelegramRecipient(payload.String(wayforpay.FieldClientEmail))
	if err != nil {
		log.Error().Err(err).Msg("no telegram recipient in clientEmail")
		return err
	}

	if orderRef != "" {
		claimed, err := ws.deliveries.Claim(ctx, orderRef)
		if err != nil {
			log.Warn().Err(err).Msg("delivery store unavailable, sending without deduplication")
		} else if !claimed {
			log.Info().Int64("chat_id", chatID).Msg("plan already delivered for order, skipping")
			monitoring.DuplicateDelivery()
			return nil
		}
	}

	if err := ws.deliver(ctx, chatID, payload.String(wayforpay.FieldCustomerName)); err != nil {
		monitoring.DocumentSendFailed()
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to deliver plan document")
		if orderRef != "" {
			if relErr := ws.deliveries.Release(ctx, orderRef); relErr != nil {
				log.Warn().Err(relErr).Msg("failed to release delivery claim")
			}
		}
		return utils.ServerErr(err)
	}

	monitoring.DocumentSent()
	log.Info().Int64("chat_id", chatID).Str("provider", ws.sender.Name()).Msg("plan document delivered")
	return nil
}

func (ws *webhookService) deliver(ctx context.Context, chatID int64, name string) error {
	doc, err := ws.renderer.Render(name)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	err = ws.sender.SendDocument(ctx, providers.SendDocumentRequest{
		ChatID:   chatID,
		FileName: doc.FileName,
		Caption:  doc.Caption,
		Content:  bytes.NewReader(doc.Content),
	})
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// ParseTelegramRecipient strips the telegram_ prefix and parses the chat id.
func ParseTelegramRecipient(clientEmail string) (int64, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(clientEmail), telegramPrefix))
	if raw == "" {
		return 0, utils.BadRequestErr(reasonNoTelegramID)
	}

	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, utils.BadRequestErr(reasonInvalidTelegramID)
	}
	return chatID, nil
}
