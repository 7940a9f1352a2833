// internal/infra/notify/telegram.go
package notify

import (
	"context"
	"net/http"
	"time"

	"punchclock/internal/domain/notify"

	"gopkg.in/telebot.v3"
)

// sender is the part of *telebot.Bot the transport uses.
type sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelegramTransport delivers pages as chat messages via gopkg.in/telebot.v3.
type TelegramTransport struct {
	bot    sender
	chatID int64
}

func NewTelegramTransport(token string, chatID int64, timeout time.Duration) (*TelegramTransport, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true, // Send-only; no poller and no getMe round trip at startup
		Client:  &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	return &TelegramTransport{bot: bot, chatID: chatID}, nil
}

func (t *TelegramTransport) Name() string { return "telegram" }

func (t *TelegramTransport) Send(ctx context.Context, level notify.Level, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := &telebot.SendOptions{DisableNotification: level == notify.LevelInfo}
	_, err := t.bot.Send(telebot.ChatID(t.chatID), body, opts)
	return err
}
