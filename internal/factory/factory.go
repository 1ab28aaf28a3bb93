package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/progressjournal/internal/dependencies/clock"
	"github.com/mcoot/progressjournal/internal/dependencies/random"
	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/services/auth"
	"github.com/mcoot/progressjournal/internal/services/progress"
	"github.com/mcoot/progressjournal/internal/services/records"
	"github.com/mcoot/progressjournal/internal/storage"
	filestorage "github.com/mcoot/progressjournal/internal/storage/file"
	"github.com/mcoot/progressjournal/internal/storage/memory"
	pgstorage "github.com/mcoot/progressjournal/internal/storage/postgres"
	redisstorage "github.com/mcoot/progressjournal/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile     = "file"
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Records     *records.Service
	Progress    *progress.Service
	AuthService *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// DataDir is the document directory (required if StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// RecordsConfig holds configuration for the record store (optional)
	RecordsConfig records.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), authCfg, cfg.RecordsConfig, logger)
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		return filestorage.New(cfg.DataDir)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(*cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be file, memory, redis or postgres", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	recordsCfg records.Config,
	logger *slog.Logger,
) (*App, error) {
	recordStore, err := records.New(store, clk, logger, recordsCfg)
	if err != nil {
		return nil, err
	}

	progressService := progress.New(recordStore, rnd, model.DefaultBadgeTargets())
	recordStore.OnWrite(progressService.Forget)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Records:     recordStore,
		Progress:    progressService,
		AuthService: auth.New(recordStore, clk, rnd, authCfg),
	}, nil
}

// Close releases the storage backend's connections, if it holds any
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
