package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier posts run results to a single Telegram chat.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// New authenticates the bot token against endpoint, a tgbotapi style format
// string such as tgbotapi.APIEndpoint.
func New(token, endpoint string, chatID int64) (*Notifier, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	b, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &Notifier{bot: b, chatID: chatID}, nil
}

func (n *Notifier) Name() string { return "telegram" }

func (n *Notifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	_, err := n.bot.Send(msg)
	return err
}
