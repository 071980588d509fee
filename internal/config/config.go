package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config collects every knob the API binary reads from the environment.
type Config struct {
	Port string

	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string

	RedisAddr     string
	CacheTTL      time.Duration
	CacheDisabled bool

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	PublicHost   string

	NewsSourceURL   string
	ScrapeSchedule  string
	ScrapeDisabled  bool
	NotifyQueueSize int
	NotifyWorkers   int

	OTLPEndpoint string
	ServiceName  string
}

// Load reads the configuration from the environment, applying defaults
// suitable for local development.
func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DatabaseUser:     getEnv("DATABASE_USER", "root"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "pass"),
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseName:     getEnv("DATABASE_NAME", "shop_db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:      getEnvDuration("CACHE_TTL", time.Minute),
		CacheDisabled: getEnvBool("CACHE_DISABLED", false),

		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 25),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "noreply@sell-swap.local"),
		PublicHost:   getEnv("PUBLIC_HOST", "localhost:3000"),

		NewsSourceURL:   getEnv("NEWS_SOURCE_URL", ""),
		ScrapeSchedule:  getEnv("SCRAPE_SCHEDULE", "@every 1h"),
		ScrapeDisabled:  getEnvBool("SCRAPE_DISABLED", false),
		NotifyQueueSize: getEnvInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyWorkers:   getEnvInt("NOTIFY_WORKERS", 2),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		ServiceName:  getEnv("SERVICE_NAME", "shop-api"),
	}
}

// DatabaseDSN assembles the pgx connection string.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DatabaseUser, c.DatabasePassword, c.DatabaseHost, c.DatabasePort, c.DatabaseName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
