package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to Postgres, applies migrations and returns a storage instance
func New(cfg Config) (*Storage, error) {
	if err := Migrate(cfg.DSN); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return NewWithPool(pool), nil
}

// NewWithPool creates a storage over an existing, already migrated pool
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close releases the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetCredential(ctx context.Context, username string) (*model.Credential, error) {
	var name, email []byte
	cred := &model.Credential{}
	err := s.pool.QueryRow(ctx,
		`SELECT username, email, password_hash FROM credentials WHERE username = $1`,
		[]byte(username),
	).Scan(&name, &email, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	cred.Username = string(name)
	cred.Email = string(email)
	return cred, nil
}

func (s *Storage) CreateCredential(ctx context.Context, cred *model.Credential) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO credentials (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING`,
		[]byte(cred.Username), []byte(cred.Email), cred.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("create credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyExists
	}
	return nil
}

func (s *Storage) CredentialExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM credentials WHERE username = $1)`,
		[]byte(username),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("credential exists: %w", err)
	}
	return exists, nil
}

func (s *Storage) GetActivityLog(ctx context.Context, username string) (*model.ActivityLog, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM activity_logs WHERE username = $1`,
		[]byte(username),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLogNotFound
		}
		return nil, fmt.Errorf("get activity log: %w", err)
	}
	return storage.DecodeActivityLog(data)
}

func (s *Storage) SaveActivityLog(ctx context.Context, username string, log *model.ActivityLog) error {
	data, err := storage.EncodeActivityLog(log)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO activity_logs (username, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (username) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		[]byte(username), data,
	)
	if err != nil {
		return fmt.Errorf("save activity log: %w", err)
	}
	return nil
}
