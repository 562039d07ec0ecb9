package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

var errEmptyToken = errors.New("telegram bot token is empty")

// NewTelegramSender builds the client without calling the Bot API, so an
// unreachable Telegram does not keep the webhook from starting. An empty
// endpoint selects the public Bot API.
func NewTelegramSender(token, endpoint string, timeout time.Duration) (*TelegramSender, error) {
	if token == "" {
		return nil, errEmptyToken
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(endpoint)

	return &TelegramSender{bot: bot}, nil
}

func (s *TelegramSender) Name() string {
	return "telegram"
}

// CheckToken asks getMe who the token belongs to and returns the bot's
// username.
func (s *TelegramSender) CheckToken() (string, error) {
	me, err := s.bot.GetMe()
	if err != nil {
		return "", fmt.Errorf("check telegram token: %w", err)
	}
	s.bot.Self = me
	return me.UserName, nil
}

func (s *TelegramSender) SendDocument(ctx context.Context, req SendDocumentRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewDocument(req.ChatID, tgbotapi.FileReader{
		Name:   req.FileName,
		Reader: req.Content,
	})
	msg.Caption = req.Caption

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("send document to chat %d: %w", req.ChatID, err)
	}
	return nil
}
