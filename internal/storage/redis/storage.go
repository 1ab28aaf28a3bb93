package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Credential operations

func (s *Storage) GetCredential(ctx context.Context, username string) (*model.Credential, error) {
	data, err := s.client.Get(ctx, credentialKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCredentialNotFound
		}
		return nil, err
	}
	return storage.DecodeCredential(data)
}

func (s *Storage) CreateCredential(ctx context.Context, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	// SETNX makes registration first-writer-wins across processes
	created, err := s.client.SetNX(ctx, credentialKey(cred.Username), data, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrAlreadyExists
	}
	return nil
}

func (s *Storage) CredentialExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.client.Exists(ctx, credentialKey(username)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Activity log operations

func (s *Storage) GetActivityLog(ctx context.Context, username string) (*model.ActivityLog, error) {
	data, err := s.client.Get(ctx, activityLogKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLogNotFound
		}
		return nil, err
	}
	return storage.DecodeActivityLog(data)
}

func (s *Storage) SaveActivityLog(ctx context.Context, username string, log *model.ActivityLog) error {
	data, err := storage.EncodeActivityLog(log)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, activityLogKey(username), data, 0).Err()
}
