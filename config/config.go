package config

import (
	"encoding/base64"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultPageSize     = 10
)

type Config struct {
	Port            string
	APIBaseURL      string
	APIToken        string
	HTTPTimeout     time.Duration
	RedisAddr       string
	DBConnection    string
	SessionKey      []byte
	SessionTTL      time.Duration
	PollInterval    time.Duration
	DefaultPageSize int
	LogFile         string

	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	NotifyEmail  string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
		APIToken:        getEnv("API_TOKEN", ""),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 15*time.Second),
		RedisAddr:       getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		DBConnection:    getEnv("DB_CONNECTION_STRING", ""),
		SessionTTL:      getDuration("SESSION_TTL", 30*time.Minute),
		PollInterval:    getDuration("POLL_INTERVAL", defaultPollInterval),
		DefaultPageSize: getInt("DEFAULT_PAGE_SIZE", defaultPageSize),
		LogFile:         getEnv("LOG_FILE", ""),

		SMTPServer:   getEnv("EMAIL_SMTP_SERVER", ""),
		SMTPPort:     getInt("EMAIL_SMTP_PORT", 587),
		SMTPUsername: getEnv("EMAIL_SMTP_USERNAME", ""),
		SMTPPassword: getEnv("EMAIL_SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_MESSAGE_FROM", ""),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("missing-api-base-url")
	}

	if cfg.DBConnection == "" {
		return nil, errors.New("missing-db-connection-string")
	}

	key, err := base64.StdEncoding.DecodeString(os.Getenv("SESSION_KEY"))
	if err != nil || len(key) < 32 {
		return nil, errors.New("session-key-must-be-base64-of-at-least-32-bytes")
	}
	cfg.SessionKey = key

	if cfg.PollInterval <= 0 {
		return nil, errors.New("poll-interval-must-be-positive")
	}

	if cfg.DefaultPageSize < 1 {
		return nil, errors.New("default-page-size-must-be-positive")
	}

	return cfg, nil
}

// PollIntervalFor returns POLL_INTERVAL_<VIEW> when set, the global interval otherwise.
// View names are upper-cased and dashes become underscores (rates-per-trip -> RATES_PER_TRIP).
func (c *Config) PollIntervalFor(view string) time.Duration {
	key := "POLL_INTERVAL_" + strings.ToUpper(strings.ReplaceAll(view, "-", "_"))
	if d := getDuration(key, 0); d > 0 {
		return d
	}
	return c.PollInterval
}

// MailEnabled reports whether enough SMTP settings exist to send notifications.
func (c *Config) MailEnabled() bool {
	return c.SMTPServer != "" && c.EmailFrom != "" && c.NotifyEmail != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	if d, err := time.ParseDuration(v); err == nil {
		return d
	}

	// bare numbers are milliseconds, the unit the browser timers used
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
