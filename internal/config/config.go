// Package config reads the application settings from the environment.
// Model settings live in llm.LoadConfig.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/thea/internal/db"
)

type Config struct {
	// Home holds the SQLite file and the CLI device id.
	Home string

	DBDriver    db.Dialect
	DBPath      string // sqlite
	DatabaseURL string // postgres

	// DeviceID overrides the stored CLI identity.
	DeviceID string

	HTTPAddr  string
	JWTSecret string
	TokenTTL  time.Duration

	TelegramToken  string
	TelegramChatID int64

	TranscribeAPIKey  string
	TranscribeBaseURL string
	TranscribeModel   string

	LogUseCases bool
	Seed        uint64 // 0 keeps plan synthesis random
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

func getInt64Env(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	home := os.Getenv("THEA_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		home = filepath.Join(userHome, ".thea")
	}

	driver, err := db.ParseDialect(getEnv("THEA_DB_DRIVER", string(db.DialectSQLite)))
	if err != nil {
		return nil, err
	}

	chatID, err := getInt64Env("THEA_TELEGRAM_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	ttlHours, err := getInt64Env("THEA_TOKEN_TTL_HOURS", 30*24)
	if err != nil {
		return nil, err
	}
	seed, err := getInt64Env("THEA_SEED", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Home:        home,
		DBDriver:    driver,
		DBPath:      getEnv("THEA_DB", filepath.Join(home, "thea.db")),
		DatabaseURL: os.Getenv("THEA_DATABASE_URL"),
		DeviceID:    os.Getenv("THEA_DEVICE_ID"),

		HTTPAddr:  getEnv("THEA_HTTP_ADDR", ":8080"),
		JWTSecret: os.Getenv("THEA_JWT_SECRET"),
		TokenTTL:  time.Duration(ttlHours) * time.Hour,

		TelegramToken:  os.Getenv("THEA_TELEGRAM_TOKEN"),
		TelegramChatID: chatID,

		TranscribeAPIKey:  getEnv("THEA_TRANSCRIBE_API_KEY", os.Getenv("OPENAI_API_KEY")),
		TranscribeBaseURL: os.Getenv("THEA_TRANSCRIBE_BASE_URL"),
		TranscribeModel:   os.Getenv("THEA_TRANSCRIBE_MODEL"),

		LogUseCases: getBoolEnv("THEA_LOG_USE_CASES", false),
		Seed:        uint64(seed),
	}

	if cfg.DBDriver == db.DialectPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("THEA_DATABASE_URL must be set when THEA_DB_DRIVER=postgres")
	}
	return cfg, nil
}

// DSN is the data source for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == db.DialectPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// TelegramEnabled reports whether reminders can go to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
