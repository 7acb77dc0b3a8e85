package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendDisabled = "disabled"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrMissingSetting = errors.New("missing required setting")
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	PostgresURL    string `env:"DB_URL"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix    string `env:"REDIS_PREFIX" envDefault:"linktracker:"`

	ClickHouse ClickHouse

	GeoIPPath     string `env:"GEOIP_DB_PATH"`
	TelegramToken string `env:"TELEGRAM_API_TOKEN"`

	LocationTimeout    time.Duration `env:"LOCATION_TIMEOUT" envDefault:"10s"`
	IPLookupTimeout    time.Duration `env:"IP_LOOKUP_TIMEOUT" envDefault:"3s"`
	TrackingCodeLength int           `env:"TRACKING_CODE_LENGTH" envDefault:"8"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"debug"`
}

type ClickHouse struct {
	Addr     string `env:"CLICKHOUSE_ADDR"`
	User     string `env:"CLICKHOUSE_USER" envDefault:"default"`
	Password string `env:"CLICKHOUSE_PASSWORD"`
	Database string `env:"CLICKHOUSE_DB" envDefault:"default"`
}

// Load reads .env files (when present) into the environment and parses it.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Warn("Error loading .env file", "error", err)
	}
	return Parse()
}

func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: PORT", ErrMissingSetting)
	}
	switch c.StorageBackend {
	case BackendMemory, BackendDisabled:
	case BackendPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("%w: DB_URL for postgres storage", ErrMissingSetting)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: REDIS_ADDR for redis storage", ErrMissingSetting)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StorageBackend)
	}
	return nil
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
