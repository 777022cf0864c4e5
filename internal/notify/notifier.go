package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers one reminder.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to a logger. It is the fallback when no
// messaging channel is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, r Reminder) error {
	n.Logger.InfoContext(ctx, "medication_reminder",
		"item_id", r.ItemID,
		"time", r.At.String(),
		"title", r.Title,
		"body", r.Body,
	)
	return nil
}

// telegramSender is the slice of *tgbotapi.BotAPI the notifier needs.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends reminders to a single chat.
type TelegramNotifier struct {
	api    telegramSender
	chatID int64
}

// NewTelegramNotifier authorizes the bot token against the Telegram API.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// NewTelegramNotifierWithEndpoint targets a non-default Bot API server. The
// endpoint is a format string taking the token and the method name.
func NewTelegramNotifierWithEndpoint(token, endpoint string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, r Reminder) error {
	msg := tgbotapi.NewMessage(n.chatID, formatMarkdown(r))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("sending telegram reminder: %w", err)
	}
	return nil
}

func formatMarkdown(r Reminder) string {
	return fmt.Sprintf("💊 *%s*\n%s\n_%s_", r.Title, r.Body, r.At.String())
}
