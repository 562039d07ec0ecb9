package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/aishape/payment-webhook/monitoring"
	"github.com/aishape/payment-webhook/pkg/wayforpay"
	service "github.com/aishape/payment-webhook/services"
	"github.com/aishape/payment-webhook/utils"
	"github.com/labstack/echo/v4"
)

const (
	reasonInvalidPayload   = "Invalid payload"
	reasonMissingSignature = "Missing signature"
	reasonInvalidSignature = "Invalid signature"
)

type WebhookHandler interface {
	ReceiveWayForPay(c echo.Context) error
}

type webhookHandler struct {
	secretKey      string
	webhookService service.WebhookService
}

func newWebhookHandler(secretKey string, webhookService service.WebhookService) WebhookHandler {
	return &webhookHandler{
		secretKey:      secretKey,
		webhookService: webhookService,
	}
}

func (wh *webhookHandler) ReceiveWayForPay(c echo.Context) error {
	ctx := c.Request().Context()
	log := utils.LoggerFromContext(ctx)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to read webhook body")
		monitoring.ObserveWebhook(monitoring.OutcomeInvalidPayload)
		return utils.Reject(c, http.StatusBadRequest, reasonInvalidPayload)
	}

	payload, err := wayforpay.ParsePayload(body)
	if err != nil {
		log.Error().Err(err).Msg("malformed webhook payload")
		monitoring.ObserveWebhook(monitoring.OutcomeInvalidPayload)
		return utils.Reject(c, http.StatusBadRequest, reasonInvalidPayload)
	}

	status := payload.String(wayforpay.FieldTransactionStatus)
	log = log.With().
		Str("order_reference", payload.String(wayforpay.FieldOrderReference)).
		Str("transaction_status", status).
		Logger()
	log.Info().Msg("webhook received")
	log.Debug().Interface("payload", payload.Redacted()).Msg("webhook payload")

	signature, ok := payload.Signature()
	if !ok {
		log.Error().Msg("webhook has no merchantSignature")
		monitoring.ObserveWebhook(monitoring.OutcomeMissingSignature)
		return utils.Reject(c, http.StatusBadRequest, reasonMissingSignature)
	}

	if !wayforpay.Verify(payload, signature, wh.secretKey) {
		log.Error().Msg("webhook signature mismatch")
		monitoring.ObserveWebhook(monitoring.OutcomeInvalidSignature)
		return utils.Reject(c, http.StatusForbidden, reasonInvalidSignature)
	}

	if status != wayforpay.StatusApproved {
		monitoring.ObserveWebhook(monitoring.OutcomeAccepted)
		return utils.Accept(c)
	}

	if err := wh.webhookService.FulfillPayment(ctx, payload); err != nil {
		if errors.Is(err, utils.ErrBadRequest) {
			monitoring.ObserveWebhook(monitoring.OutcomeRejected)
		} else {
			monitoring.ObserveWebhook(monitoring.OutcomeFailed)
		}
		return utils.HandleError(c, err)
	}

	monitoring.ObserveWebhook(monitoring.OutcomeFulfilled)
	return utils.Accept(c)
}
