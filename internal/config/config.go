package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the server configuration, read from the environment
type Config struct {
	HTTP    HTTPConfig
	Log     LogConfig
	Storage StorageConfig
	Records RecordsConfig
	Session SessionConfig
}

type HTTPConfig struct {
	Host string `env:"JOURNAL_HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `env:"JOURNAL_HTTP_PORT" env-default:"8080"`
}

type LogConfig struct {
	Level string `env:"JOURNAL_LOG_LEVEL" env-default:"info"`
}

type StorageConfig struct {
	// Type is one of file, memory, redis, postgres
	Type     string `env:"JOURNAL_STORAGE" env-default:"file"`
	DataDir  string `env:"JOURNAL_DATA_DIR" env-default:"data"`
	RedisURL string `env:"REDIS_URL"`
	PGDSN    string `env:"PG_DSN"`
}

type RecordsConfig struct {
	BcryptCost    int    `env:"JOURNAL_BCRYPT_COST" env-default:"10"`
	CorruptPolicy string `env:"JOURNAL_CORRUPT_POLICY" env-default:"recover"`
}

type SessionConfig struct {
	TTL time.Duration `env:"JOURNAL_SESSION_TTL" env-default:"24h"`
}

// Load reads configuration from the environment. Variables in envFile,
// when it exists, are loaded first without overriding ones already set.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements
func (c Config) Validate() error {
	switch c.Storage.Type {
	case "file":
		if c.Storage.DataDir == "" {
			return errors.New("JOURNAL_DATA_DIR is required for file storage")
		}
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return errors.New("REDIS_URL is required for redis storage")
		}
	case "postgres":
		if c.Storage.PGDSN == "" {
			return errors.New("PG_DSN is required for postgres storage")
		}
	default:
		return fmt.Errorf("JOURNAL_STORAGE must be file, memory, redis or postgres, got %q", c.Storage.Type)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("JOURNAL_HTTP_PORT out of range: %d", c.HTTP.Port)
	}
	if c.Session.TTL <= 0 {
		return errors.New("JOURNAL_SESSION_TTL must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Addr is the HTTP listen address
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel converts the configured level name
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Level))); err != nil {
		return 0, fmt.Errorf("JOURNAL_LOG_LEVEL: %w", err)
	}
	return level, nil
}
