package providers

import (
	"context"
	"io"
)

type SendDocumentRequest struct {
	ChatID   int64
	FileName string
	Caption  string
	Content  io.Reader
}

type Provider interface {
	Name() string
}

// DocumentSender delivers a file to a messaging-bot user.
type DocumentSender interface {
	Provider
	SendDocument(ctx context.Context, req SendDocumentRequest) error
}
