package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting. Counters live in Redis when RedisURL is set.
	RedisURL     string
	RateLimitMax int

	// Blob storage
	GCPProjectID          string
	GoogleCredentialsFile string
	ReportsBucket         string // env: REPORTS_BUCKET, holds <mode>/latest.<ext>
	GatedReportsBucket    string // env: GATED_REPORTS_BUCKET, holds <namespace>/<file>
	CatalogFile           string

	// Health monitoring
	ServiceRoleKey string // bearer credential used by the monitor
	ReportURL      string // products-report endpoint probed by the monitor
	HealthProbeKey string // artifact signed by the storage probe
	HealthInterval time.Duration
	StoreTimeout   time.Duration
	BlobTimeout    time.Duration
	AlertTimeout   time.Duration
	ProbeTimeout   time.Duration

	// Telegram
	TelegramBotToken        string
	TelegramAPIURL          string
	TelegramAlertChatID     string
	TelegramCommunityChatID string

	// SMTP
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls", "starttls"
	AlertEmailTo []string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honoured if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	baseURL := getEnv("BASE_URL", "http://localhost:3000")

	return &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     baseURL,
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/trenddrop?sslmode=disable"),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		RedisURL:     getEnv("REDIS_URL", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		GCPProjectID:          getEnv("GCP_PROJECT_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ReportsBucket:         getEnv("REPORTS_BUCKET", "trenddrop-reports"),
		GatedReportsBucket:    getEnv("GATED_REPORTS_BUCKET", "reports"),
		CatalogFile:           getEnv("CATALOG_FILE", "catalog.yaml"),

		ServiceRoleKey: getEnv("SERVICE_ROLE_KEY", ""),
		ReportURL:      getEnv("REPORT_URL", strings.TrimRight(baseURL, "/")+"/products-report"),
		HealthProbeKey: getEnv("HEALTH_PROBE_KEY", "weekly/latest.pdf"),
		HealthInterval: getEnvDuration("HEALTH_INTERVAL", 15*time.Minute),
		StoreTimeout:   getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		BlobTimeout:    getEnvDuration("BLOB_TIMEOUT", 10*time.Second),
		AlertTimeout:   getEnvDuration("ALERT_TIMEOUT", 10*time.Second),
		ProbeTimeout:   getEnvDuration("PROBE_TIMEOUT", 10*time.Second),

		TelegramBotToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIURL:          getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		TelegramAlertChatID:     getEnv("TELEGRAM_ALERT_CHAT_ID", getEnv("TELEGRAM_CHAT_ID", "")),
		TelegramCommunityChatID: getEnv("TELEGRAM_COMMUNITY_CHAT_ID", ""),

		SMTPEnabled:  getEnv("SMTP_ENABLED", "") != "",
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "TrendDrop"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),
		AlertEmailTo: splitList(getEnv("ALERT_EMAIL_TO", "")),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured well enough to send mail.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsTelegramEnabled returns true if a bot token is configured.
func (c *Config) IsTelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
