package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Token          string
	AdminChatID    int64
	DatabaseURL    string
	RedisAddr      string
	ProxyURL       string
	MigrationsPath string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment
		// (Docker, CI, etc.).
	}

	cfg := &Config{
		Token:          os.Getenv("BOT_TOKEN"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		ProxyURL:       proxyFromEnv(),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: ADMIN_CHAT_ID must be a numeric chat id, got %q", raw)
		}
		cfg.AdminChatID = id
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// proxyFromEnv mirrors the usual proxy variable precedence.
func proxyFromEnv() string {
	for _, key := range []string{"PROXY_URL", "HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// validate applies all the rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: BOT_TOKEN is required and cannot be empty")
	}

	if c.AdminChatID == 0 {
		return fmt.Errorf("config: ADMIN_CHAT_ID is required and cannot be zero")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/clubbot?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if strings.TrimSpace(c.RedisAddr) == "" {
		c.RedisAddr = "localhost:6379"
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "migrations"
	}

	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return fmt.Errorf("config: invalid PROXY_URL (%q): %w", c.ProxyURL, err)
		}
	}

	return nil
}
