// Package file stores each document as a JSON file under a data directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/storage"
)

const (
	credentialsDir = "credentials"
	logsDir        = "logs"
)

// Storage is a filesystem implementation of the storage interface.
// Layout: <dir>/credentials/<user>.json and <dir>/logs/<user>.json
type Storage struct {
	dir string
}

// New creates the data directory tree if needed and returns a Storage rooted at dir
func New(dir string) (*Storage, error) {
	for _, sub := range []string{credentialsDir, logsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Credential operations

func (s *Storage) GetCredential(ctx context.Context, username string) (*model.Credential, error) {
	data, err := os.ReadFile(s.credentialPath(username))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("read credential: %w", err)
	}
	return storage.DecodeCredential(data)
}

func (s *Storage) CreateCredential(ctx context.Context, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	target := s.credentialPath(cred.Username)
	tmp, err := writeTemp(filepath.Dir(target), data)
	if err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	defer os.Remove(tmp)

	// Link fails if the target exists, so creation is atomic and exclusive
	if err := os.Link(tmp, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

func (s *Storage) CredentialExists(ctx context.Context, username string) (bool, error) {
	_, err := os.Stat(s.credentialPath(username))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat credential: %w", err)
}

// Activity log operations

func (s *Storage) GetActivityLog(ctx context.Context, username string) (*model.ActivityLog, error) {
	data, err := os.ReadFile(s.logPath(username))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrLogNotFound
		}
		return nil, fmt.Errorf("read activity log: %w", err)
	}
	return storage.DecodeActivityLog(data)
}

func (s *Storage) SaveActivityLog(ctx context.Context, username string, log *model.ActivityLog) error {
	data, err := storage.EncodeActivityLog(log)
	if err != nil {
		return err
	}

	target := s.logPath(username)
	tmp, err := writeTemp(filepath.Dir(target), data)
	if err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}

	// Rename replaces the old document in one step; readers see the old or the new file
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace activity log: %w", err)
	}
	return nil
}

func (s *Storage) credentialPath(username string) string {
	return filepath.Join(s.dir, credentialsDir, fileName(username))
}

func (s *Storage) logPath(username string) string {
	return filepath.Join(s.dir, logsDir, fileName(username))
}

// fileName escapes username so any string maps to a single path element
func fileName(username string) string {
	return url.PathEscape(username) + ".json"
}

// writeTemp writes data to a new temp file in dir, synced to disk
func writeTemp(dir string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", err
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
