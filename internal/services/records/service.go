package records

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/progressjournal/internal/dependencies/clock"
	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/storage"
)

// CorruptPolicy decides what writes do when a stored log cannot be decoded
type CorruptPolicy string

const (
	// CorruptRecover logs a warning and continues from an empty log
	CorruptRecover CorruptPolicy = "recover"
	// CorruptReject fails the write with model.ErrCorruptDocument and leaves the document alone
	CorruptReject CorruptPolicy = "reject"
)

// ParseCorruptPolicy validates a policy name; empty means CorruptRecover
func ParseCorruptPolicy(s string) (CorruptPolicy, error) {
	switch CorruptPolicy(s) {
	case "", CorruptRecover:
		return CorruptRecover, nil
	case CorruptReject:
		return CorruptReject, nil
	default:
		return "", fmt.Errorf("unknown corrupt policy %q", s)
	}
}

// Config holds configuration for the record store
type Config struct {
	BcryptCost    int
	CorruptPolicy CorruptPolicy
}

// DefaultConfig returns default record store configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost:    bcrypt.DefaultCost,
		CorruptPolicy: CorruptRecover,
	}
}

// LogState describes what was found when loading a user's log
type LogState int

const (
	LogPresent LogState = iota
	LogAbsent
	LogCorrupt
)

func (s LogState) String() string {
	switch s {
	case LogPresent:
		return "present"
	case LogAbsent:
		return "absent"
	case LogCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// Snapshot is a loaded log together with how it was obtained.
// Log is never nil; for LogAbsent and LogCorrupt it is the empty document.
type Snapshot struct {
	Log   *model.ActivityLog
	State LogState
	// Err is the decode error when State is LogCorrupt
	Err error
}

// Service is the record store: credentials and per-user activity logs
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	locks   *userLocks
	cfg     Config

	// called with the username after each saved log write; set at wiring time
	onWrite []func(username string)

	// compared against when the user does not exist so that unknown
	// usernames and wrong passwords cost the same
	dummyHash []byte
}

// New creates a new record store
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) (*Service, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	if cfg.CorruptPolicy == "" {
		cfg.CorruptPolicy = CorruptRecover
	}

	dummy, err := bcrypt.GenerateFromPassword(passwordKey("progress-journal-dummy"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &Service{
		storage:   storage,
		clock:     clock,
		logger:    logger,
		locks:     newUserLocks(),
		cfg:       cfg,
		dummyHash: dummy,
	}, nil
}

// passwordKey reduces a password of any length to the 44-byte input bcrypt
// hashes, since bcrypt rejects passwords longer than 72 bytes
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// OnWrite registers fn to run after every saved activity log write.
// It must be called before the service is used concurrently.
func (s *Service) OnWrite(fn func(username string)) {
	s.onWrite = append(s.onWrite, fn)
}

func (s *Service) notifyWrite(username string) {
	for _, fn := range s.onWrite {
		fn(username)
	}
}

// Config returns the effective configuration
func (s *Service) Config() Config {
	return s.cfg
}

// Register creates a credential for username.
// It fails with model.ErrAlreadyExists if one already exists; the existing credential is never touched.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	unlock := s.locks.lock(username)
	defer unlock()

	exists, err := s.storage.CredentialExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check credential: %w", err)
	}
	if exists {
		return model.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	cred := &model.Credential{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.storage.CreateCredential(ctx, cred); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return err
		}
		return fmt.Errorf("create credential: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Authenticate checks a username and password.
// It returns model.ErrNotFound for unknown users and model.ErrMismatch for a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.Credential, error) {
	cred, err := s.storage.GetCredential(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrCredentialNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, passwordKey(password))
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), passwordKey(password)); err != nil {
		return nil, model.ErrMismatch
	}
	return cred, nil
}

// Exists reports whether a credential exists for username
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	exists, err := s.storage.CredentialExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check credential: %w", err)
	}
	return exists, nil
}

// Append stamps entry with the current time and adds it to the end of its category.
// The entry's Timestamp field is overwritten in place.
func (s *Service) Append(ctx context.Context, username string, entry model.Entry) error {
	unlock := s.locks.lock(username)
	defer unlock()

	log, err := s.loadForWrite(ctx, username)
	if err != nil {
		return err
	}

	entry.Stamp(model.FormatTimestamp(s.clock.Now()))
	if err := log.Append(entry); err != nil {
		return err
	}

	if err := s.storage.SaveActivityLog(ctx, username, log); err != nil {
		return fmt.Errorf("save activity log: %w", err)
	}
	s.notifyWrite(username)
	return nil
}

// LoadLog returns the user's log, or an empty log when none is stored or it is unreadable
func (s *Service) LoadLog(ctx context.Context, username string) (*model.ActivityLog, error) {
	snap, err := s.LoadLogSnapshot(ctx, username)
	if err != nil {
		return nil, err
	}
	return snap.Log, nil
}

// LoadLogSnapshot is LoadLog that also reports whether the document was present, absent or corrupt
func (s *Service) LoadLogSnapshot(ctx context.Context, username string) (Snapshot, error) {
	log, err := s.storage.GetActivityLog(ctx, username)
	switch {
	case err == nil:
		return Snapshot{Log: log, State: LogPresent}, nil
	case errors.Is(err, model.ErrLogNotFound):
		return Snapshot{Log: model.NewActivityLog(), State: LogAbsent}, nil
	case errors.Is(err, model.ErrCorruptDocument):
		s.logger.Warn("activity log is corrupt",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return Snapshot{Log: model.NewActivityLog(), State: LogCorrupt, Err: err}, nil
	default:
		return Snapshot{}, fmt.Errorf("get activity log: %w", err)
	}
}

// LoadCategory returns the entries of one category in insertion order
func (s *Service) LoadCategory(ctx context.Context, username string, c model.Category) ([]model.Entry, error) {
	if _, err := model.ParseCategory(string(c)); err != nil {
		return nil, err
	}
	log, err := s.LoadLog(ctx, username)
	if err != nil {
		return nil, err
	}
	return log.Entries(c)
}

// CompleteGoal marks the goal at index as completed.
// An out of range index returns model.ErrIndexOutOfRange and nothing is written.
// Completing an already completed goal succeeds without writing.
func (s *Service) CompleteGoal(ctx context.Context, username string, index int) error {
	unlock := s.locks.lock(username)
	defer unlock()

	log, err := s.loadForWrite(ctx, username)
	if err != nil {
		return err
	}

	changed, err := log.CompleteGoal(index)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := s.storage.SaveActivityLog(ctx, username, log); err != nil {
		return fmt.Errorf("save activity log: %w", err)
	}
	s.notifyWrite(username)
	return nil
}

// loadForWrite loads the log that a read-modify-write starts from, applying the corrupt policy.
// Callers must hold the username lock.
func (s *Service) loadForWrite(ctx context.Context, username string) (*model.ActivityLog, error) {
	snap, err := s.LoadLogSnapshot(ctx, username)
	if err != nil {
		return nil, err
	}
	if snap.State == LogCorrupt && s.cfg.CorruptPolicy == CorruptReject {
		return nil, snap.Err
	}
	return snap.Log, nil
}
