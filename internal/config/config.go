package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the collector.
type Config struct {
	AppEnv          string
	DatabaseURL     string
	LogLevel        string
	LogEncoding     string
	TokenCleanupAt  string
	Location        *time.Location
	TelegramToken   string
	ModeratorChatID int64
}

// Development reports whether the service runs with developer defaults.
func (c Config) Development() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// NotifierEnabled is true when both the bot token and the moderator chat are set.
func (c Config) NotifierEnabled() bool {
	return c.TelegramToken != "" && c.ModeratorChatID != 0
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		AppEnv:         getEnv("APP_ENV", "production"),
		DatabaseURL:    getEnv("DATABASE_URL", "opinion_collector.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogEncoding:    getEnv("LOG_ENCODING", "json"),
		TokenCleanupAt: getEnv("TOKEN_CLEANUP_AT", "20:33"),
		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
	}

	loc, err := parseLocation(getEnv("TIMEZONE", ""))
	if err != nil {
		return cfg, err
	}
	cfg.Location = loc

	if raw := getEnv("MODERATOR_CHAT_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("MODERATOR_CHAT_ID must be an integer, got %q", raw)
		}
		cfg.ModeratorChatID = id
	}

	if cfg.TelegramToken != "" && cfg.ModeratorChatID == 0 {
		return cfg, fmt.Errorf("MODERATOR_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseLocation(raw string) (*time.Location, error) {
	if raw == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
