package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Documents are held as encoded JSON so callers never share memory with the store.
type Storage struct {
	mu sync.RWMutex

	credentials map[string][]byte
	logs        map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		credentials: make(map[string][]byte),
		logs:        make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Credential operations

func (s *Storage) GetCredential(ctx context.Context, username string) (*model.Credential, error) {
	s.mu.RLock()
	data, ok := s.credentials[username]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrCredentialNotFound
	}
	return storage.DecodeCredential(data)
}

func (s *Storage) CreateCredential(ctx context.Context, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credentials[cred.Username]; ok {
		return model.ErrAlreadyExists
	}
	s.credentials[cred.Username] = data
	return nil
}

func (s *Storage) CredentialExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.credentials[username]
	return ok, nil
}

// Activity log operations

func (s *Storage) GetActivityLog(ctx context.Context, username string) (*model.ActivityLog, error) {
	s.mu.RLock()
	data, ok := s.logs[username]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrLogNotFound
	}
	return storage.DecodeActivityLog(data)
}

func (s *Storage) SaveActivityLog(ctx context.Context, username string, log *model.ActivityLog) error {
	data, err := storage.EncodeActivityLog(log)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[username] = data
	return nil
}

// PutRawActivityLog stores raw bytes as a user's log document, bypassing encoding.
// Used to simulate damaged documents.
func (s *Storage) PutRawActivityLog(username string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[username] = append([]byte(nil), data...)
}

// RawActivityLog returns the stored bytes of a user's log document
func (s *Storage) RawActivityLog(username string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.logs[username]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}
