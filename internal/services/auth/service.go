package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mcoot/progressjournal/internal/dependencies/clock"
	"github.com/mcoot/progressjournal/internal/dependencies/random"
	"github.com/mcoot/progressjournal/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// sessionTokenPrefix marks session tokens
const sessionTokenPrefix = "sess_"

// Accounts is the credential side of the record store
type Accounts interface {
	Register(ctx context.Context, username, email, password string) error
	Authenticate(ctx context.Context, username, password string) (*model.Credential, error)
}

// Session represents an authenticated session
type Session struct {
	Token     string
	Username  string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication and session management
type Service struct {
	accounts Accounts
	clock    clock.Clock
	random   random.Random

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(accounts Accounts, clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		accounts:        accounts,
		clock:           clock,
		random:          random,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates an account and a session for it
func (s *Service) Register(ctx context.Context, username, email, password string) (*Session, error) {
	if err := s.accounts.Register(ctx, username, email, password); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return s.createSession(username, email), nil
}

// Login authenticates an account and creates a session.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	cred, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return s.createSession(cred.Username, cred.Email), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// RunCleanup removes expired sessions every interval until ctx is done
func (s *Service) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanExpiredSessions()
		}
	}
}

func (s *Service) createSession(username, email string) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     s.random.Token(sessionTokenPrefix),
		Username:  username,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}
