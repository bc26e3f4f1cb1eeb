package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Graph     GraphConfig
	Auth      AuthConfig
	LLM       LLMConfig
	Reminders ReminderConfig
	Calendar  CalendarConfig
	Logging   LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	AllowedOriginsCSV string
}

// DatabaseConfig selects the SQL driver and connection string.
type DatabaseConfig struct {
	Driver       string // postgres|sqlite
	DSN          string
	MaxOpenConns int
}

// GraphConfig describes connectivity to the Neo4j symptom graph. An empty URI
// disables the graph.
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// LLMConfig configures the chat companion model.
type LLMConfig struct {
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	DailyLimit     int
}

// ReminderConfig configures the daily Telegram reminder job.
type ReminderConfig struct {
	Enabled       bool
	Schedule      string
	TelegramToken string
	BotUsername   string
	WebhookSecret string
}

// CalendarConfig controls how "today" is derived from the wall clock.
type CalendarConfig struct {
	Timezone string
	Location *time.Location
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultDatabaseDriver   = "postgres"
	defaultMaxOpenConns     = 10
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultSecret           = "arivai-secret-key-change-in-production"
	defaultAccessTTL        = 24 * time.Hour
	defaultRefreshTTL       = 30 * 24 * time.Hour
	defaultBcryptCost       = 10
	defaultModel            = "gemini-2.0-flash"
	defaultLLMTimeout       = 30 * time.Second
	defaultChatDailyLimit   = 50
	defaultReminderSchedule = "0 8 * * *"
	defaultBotUsername      = "arivai_bot"
	defaultTimezone         = "UTC"
)

// Load reads configuration from the environment, applying defaults. Values
// from a .env file in the working directory are loaded first without
// overriding variables that are already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:              valueOrDefault("SERVER_HOST", defaultHost),
			AllowedOriginsCSV: os.Getenv("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(valueOrDefault("DATABASE_DRIVER", defaultDatabaseDriver)),
			DSN:          databaseURL(),
			MaxOpenConns: parseIntWithDefault("DATABASE_MAX_OPEN_CONNS", defaultMaxOpenConns),
		},
		Graph: GraphConfig{
			URI:            os.Getenv("GRAPH_URI"),
			Database:       valueOrDefault("GRAPH_DATABASE", ""),
			Username:       os.Getenv("GRAPH_USERNAME"),
			Password:       os.Getenv("GRAPH_PASSWORD"),
			MaxConnections: parseIntWithDefault("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSessions),
		},
		Auth: AuthConfig{
			Secret:     valueOrDefault("SESSION_SECRET", defaultSecret),
			BcryptCost: parseIntWithDefault("BCRYPT_COST", defaultBcryptCost),
		},
		LLM: LLMConfig{
			APIKey:     os.Getenv("GEMINI_API_KEY"),
			Model:      valueOrDefault("GEMINI_MODEL", defaultModel),
			DailyLimit: parseIntWithDefault("CHAT_DAILY_LIMIT", defaultChatDailyLimit),
		},
		Reminders: ReminderConfig{
			Enabled:       parseBoolWithDefault("REMINDERS_ENABLED", false),
			Schedule:      valueOrDefault("REMINDERS_SCHEDULE", defaultReminderSchedule),
			TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			BotUsername:   valueOrDefault("TELEGRAM_BOT_USERNAME", defaultBotUsername),
			WebhookSecret: os.Getenv("TELEGRAM_WEBHOOK_SECRET"),
		},
		Calendar: CalendarConfig{
			Timezone: valueOrDefault("APP_TIMEZONE", defaultTimezone),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key      string
		dst      *time.Duration
		fallback time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout, defaultReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout, defaultWriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout, defaultIdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout, defaultShutdownTimeout},
		{"JWT_ACCESS_TTL", &cfg.Auth.AccessTTL, defaultAccessTTL},
		{"JWT_REFRESH_TTL", &cfg.Auth.RefreshTTL, defaultRefreshTTL},
		{"GEMINI_TIMEOUT", &cfg.LLM.RequestTimeout, defaultLLMTimeout},
	}
	for _, d := range durations {
		val, err := parseDuration(d.key, d.fallback)
		if err != nil {
			return Config{}, err
		}
		*d.dst = val
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}

	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	cfg.Calendar.Location = loc

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to DATABASE_PUBLIC_URL when
// the primary URL is unset or points at a private network host.
func databaseURL() string {
	url := os.Getenv("DATABASE_URL")
	if url == "" || strings.Contains(url, ".internal") {
		if public := os.Getenv("DATABASE_PUBLIC_URL"); public != "" {
			return public
		}
	}
	return url
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
