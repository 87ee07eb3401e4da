package config

import (
	"errors"
	"os"
	"strings"
)

type AppConfig struct {
	TelegramAPIKey string
	WebhookServer  string
	ListenAddr     string

	JeopardyServer string

	RedisURL       string
	RedisNamespace string

	BotName string

	GithubAPIKey string
	GithubUser   string
	GithubRepo   string

	ChangelogPath string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:     ":8443",
		RedisNamespace: "jeopardy",
		ChangelogPath:  "changelog",
	}

	cfg.TelegramAPIKey = strings.TrimSpace(os.Getenv("TELEGRAM_API_KEY"))
	cfg.WebhookServer = strings.TrimRight(strings.TrimSpace(os.Getenv("WEBHOOK_SERVER")), "/")
	cfg.JeopardyServer = strings.TrimSpace(os.Getenv("JEOPARDY_SERVER"))

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	if v := strings.TrimSpace(os.Getenv("REDIS_NAMESPACE")); v != "" {
		cfg.RedisNamespace = v
	}

	// Group chats address commands as /cmd@botname; matching is
	// case-insensitive, so store the name lowered.
	cfg.BotName = strings.ToLower(strings.TrimSpace(os.Getenv("BOT_NAME")))

	cfg.GithubAPIKey = strings.TrimSpace(os.Getenv("GITHUB_API_KEY"))
	cfg.GithubUser = strings.TrimSpace(os.Getenv("GITHUB_USER"))
	cfg.GithubRepo = strings.TrimSpace(os.Getenv("GITHUB_REPO"))

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("CHANGELOG_PATH")); v != "" {
		cfg.ChangelogPath = v
	}

	if cfg.TelegramAPIKey == "" {
		return nil, errors.New("TELEGRAM_API_KEY is required")
	}
	if cfg.WebhookServer == "" {
		return nil, errors.New("WEBHOOK_SERVER is required")
	}
	if cfg.JeopardyServer == "" {
		return nil, errors.New("JEOPARDY_SERVER is required")
	}
	if cfg.BotName == "" {
		return nil, errors.New("BOT_NAME is required")
	}

	return cfg, nil
}
