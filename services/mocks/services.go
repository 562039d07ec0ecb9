package mocks

import (
	"context"
	"io"

	"github.com/aishape/payment-webhook/documents"
	"github.com/aishape/payment-webhook/pkg/wayforpay"
	"github.com/aishape/payment-webhook/providers"
	"github.com/stretchr/testify/mock"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(name string) (*documents.Document, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

// SentDocument is what MockSender received, with the content drained.
type SentDocument struct {
	ChatID   int64
	FileName string
	Caption  string
	Content  []byte
}

type MockSender struct {
	mock.Mock
	Sent []SentDocument
}

func (m *MockSender) Name() string {
	return "mock"
}

func (m *MockSender) SendDocument(ctx context.Context, req providers.SendDocumentRequest) error {
	var content []byte
	if req.Content != nil {
		content, _ = io.ReadAll(req.Content)
	}
	m.Sent = append(m.Sent, SentDocument{
		ChatID:   req.ChatID,
		FileName: req.FileName,
		Caption:  req.Caption,
		Content:  content,
	})
	args := m.Called(ctx, req.ChatID)
	return args.Error(0)
}

type MockDeliveryStore struct {
	mock.Mock
}

func (m *MockDeliveryStore) Claim(ctx context.Context, orderReference string) (bool, error) {
	args := m.Called(ctx, orderReference)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryStore) Release(ctx context.Context, orderReference string) error {
	args := m.Called(ctx, orderReference)
	return args.Error(0)
}

type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) FulfillPayment(ctx context.Context, payload wayforpay.Payload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
