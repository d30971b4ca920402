// Package observability provides structured logging and metrics.
package observability

import (
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// LogConfig configures the logging behavior.
type LogConfig struct {
	// Level sets the minimum log level: "debug", "info", "warn", "error".
	Level string

	// Format is "json" (production default) or "text".
	Format string

	// Output defaults to os.Stdout.
	Output io.Writer
}

// redactPatterns match credentials that must never reach the logs. The bot
// handles a Slack bot token and a Jenkins API token, both of which end up in
// error strings from their respective clients.
var redactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`xox[abps]-[0-9A-Za-z-]+`),
	regexp.MustCompile(`(?i)(token|secret|password)=\S+`),
	regexp.MustCompile(`(?i)basic [a-zA-Z0-9+/=]{16,}`),
}

// sensitiveKeys are attribute keys whose values are always redacted.
var sensitiveKeys = map[string]bool{
	"token":     true,
	"password":  true,
	"secret":    true,
	"api_token": true,
}

// NewLogger creates a structured slog logger with credential redaction
// applied to every attribute value.
func NewLogger(cfg LogConfig) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:       LogLevel(cfg.Level),
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[REDACTED]")
	}
	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, Redact(a.Value.String()))
	}
	return a
}

// Redact replaces credential-shaped substrings with a placeholder.
func Redact(s string) string {
	for _, re := range redactPatterns {
		s = re.ReplaceAllString(s, "[REDACTED]")
	}
	return s
}

// LogLevel converts a level name to a slog.Level, defaulting to info.
func LogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
