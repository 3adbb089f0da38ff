package config

import (
    "fmt"
    "os"
    "strconv"
    "strings"

    tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

    "play-probe/internal/util"
)

const DefaultCredentialsPath = "../../fastlane/play-console-credentials.json"

type Config struct {
    CredentialsPath string
    APIEndpoint     string

    PackageName    string
    Candidates     []string
    CandidatesFile string
    FindAll        bool

    LogLevel string

    NotifyProvider      string
    TelegramToken       string
    TelegramChatID      int64
    TelegramAPIEndpoint string
}

func FromEnv() (Config, error) {
    var c Config
    c.CredentialsPath = strings.TrimSpace(os.Getenv("PLAY_CREDENTIALS_JSON"))
    if c.CredentialsPath == "" {
        c.CredentialsPath = DefaultCredentialsPath
    }
    c.APIEndpoint = strings.TrimSpace(os.Getenv("PLAY_API_ENDPOINT"))
    if c.APIEndpoint != "" && !strings.HasSuffix(c.APIEndpoint, "/") {
        c.APIEndpoint += "/"
    }

    c.PackageName = strings.TrimSpace(os.Getenv("PLAY_PACKAGE_NAME"))
    c.Candidates = ParseList(os.Getenv("PLAY_PACKAGE_CANDIDATES"))
    c.CandidatesFile = strings.TrimSpace(os.Getenv("PLAY_CANDIDATES_FILE"))
    c.FindAll = util.NormalizeBool(os.Getenv("PLAY_FIND_ALL"))

    c.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
    if c.LogLevel == "" {
        c.LogLevel = "warn"
    }

    c.NotifyProvider = strings.TrimSpace(os.Getenv("NOTIFY_PROVIDER"))
    if c.NotifyProvider == "" {
        c.NotifyProvider = "none"
    }
    c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
    c.TelegramAPIEndpoint = strings.TrimSpace(os.Getenv("TELEGRAM_API_ENDPOINT"))
    if c.TelegramAPIEndpoint == "" {
        c.TelegramAPIEndpoint = tgbotapi.APIEndpoint
    }

    if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
        id, err := strconv.ParseInt(raw, 10, 64)
        if err != nil {
            return c, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
        }
        c.TelegramChatID = id
    }

    if c.NotifyProvider == "telegram" {
        if c.TelegramToken == "" {
            return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
        }
        if c.TelegramChatID == 0 {
            return c, fmt.Errorf("TELEGRAM_CHAT_ID is empty")
        }
    }

    return c, nil
}

// ParseList splits a comma separated list, dropping blank entries and
// keeping the original order.
func ParseList(raw string) []string {
    out := []string{}
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return out
    }
    for _, p := range strings.Split(raw, ",") {
        p = strings.TrimSpace(p)
        if p == "" {
            continue
        }
        out = append(out, p)
    }
    return out
}
