package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aishape/payment-webhook/config"
	"github.com/aishape/payment-webhook/documents"
	service "github.com/aishape/payment-webhook/services"
	"github.com/aishape/payment-webhook/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(renderer *mocks.MockRenderer, sender *mocks.MockSender) *Handlers {
	cfg := &config.Config{SecretKey: testSecret}
	return NewHandlers(service.NewServices(cfg, renderer, sender, nil))
}

var planDocument = &documents.Document{
	FileName: "AIShape_ProPlan.pdf",
	Caption:  "thanks",
	Content:  []byte("%PDF-1.3"),
}

func TestWebhook_ApprovedSendsToChatFromClientEmail(t *testing.T) {
	renderer := &mocks.MockRenderer{}
	sender := &mocks.MockSender{}
	renderer.On("Render", "Olena").Return(planDocument, nil)
	sender.On("SendDocument", mock.Anything, int64(12345)).Return(nil)

	rec := serveWebhook(newTestHandlers(renderer, sender).Webhook(), signedBody(t, approvedFields()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"accept"}`, rec.Body.String())
	require.Len(t, sender.Sent, 1)
	assert.Equal(t, int64(12345), sender.Sent[0].ChatID)
	assert.Equal(t, "AIShape_ProPlan.pdf", sender.Sent[0].FileName)
	assert.Equal(t, "thanks", sender.Sent[0].Caption)
}

func TestWebhook_ApprovedWithEmptyTelegramID(t *testing.T) {
	renderer := &mocks.MockRenderer{}
	sender := &mocks.MockSender{}

	fields := approvedFields()
	fields["clientEmail"] = "telegram_"

	rec := serveWebhook(newTestHandlers(renderer, sender).Webhook(), signedBody(t, fields))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"error","reason":"No Telegram ID"}`, rec.Body.String())
	renderer.AssertNotCalled(t, "Render", mock.Anything)
	assert.Empty(t, sender.Sent)
}

func TestWebhook_DeclinedGeneratesNothing(t *testing.T) {
	renderer := &mocks.MockRenderer{}
	sender := &mocks.MockSender{}

	fields := approvedFields()
	fields["transactionStatus"] = "Declined"

	rec := serveWebhook(newTestHandlers(renderer, sender).Webhook(), signedBody(t, fields))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"accept"}`, rec.Body.String())
	renderer.AssertNotCalled(t, "Render", mock.Anything)
	assert.Empty(t, sender.Sent)
}

func TestWebhook_SendFailureIsServerError(t *testing.T) {
	renderer := &mocks.MockRenderer{}
	sender := &mocks.MockSender{}
	renderer.On("Render", "Olena").Return(planDocument, nil)
	sender.On("SendDocument", mock.Anything, int64(12345)).Return(errors.New("Bad Request: chat not found"))

	rec := serveWebhook(newTestHandlers(renderer, sender).Webhook(), signedBody(t, approvedFields()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error"}`, rec.Body.String())
	assert.Len(t, sender.Sent, 1)
}
