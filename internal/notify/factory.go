package notify

import (
    "fmt"

    "play-probe/internal/config"
    "play-probe/internal/notify/telegram"
)

func NewNotifier(cfg config.Config) (Notifier, error) {
    switch cfg.NotifyProvider {
    case "", "none":
        return Nop{}, nil
    case "telegram":
        n, err := telegram.New(cfg.TelegramToken, cfg.TelegramAPIEndpoint, cfg.TelegramChatID)
        if err != nil {
            return nil, fmt.Errorf("telegram: %w", err)
        }
        return n, nil
    default:
        return nil, fmt.Errorf("unknown notify provider: %s", cfg.NotifyProvider)
    }
}
