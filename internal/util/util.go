package util

import (
    "strings"
    "time"
)

func NowISO() string {
    return time.Now().Format(time.RFC3339)
}

func NormalizeBool(s string) bool {
    s = strings.TrimSpace(strings.ToLower(s))
    switch s {
    case "yes", "true", "1", "y", "on":
        return true
    default:
        return false
    }
}
