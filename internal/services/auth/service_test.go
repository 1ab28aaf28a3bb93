package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/progressjournal/internal/dependencies/mocks"
	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/services/records"
	"github.com/mcoot/progressjournal/internal/storage/memory"
	"github.com/mcoot/progressjournal/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	rec, err := records.New(s.storage, s.clock, testutil.NopLogger(), records.Config{BcryptCost: bcrypt.MinCost})
	s.Require().NoError(err)

	s.service = New(rec, s.clock, s.random, DefaultConfig())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	s.random.QueueToken("sess_abc")

	session, err := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	s.Require().NoError(err)

	s.Equal("sess_abc", session.Token)
	s.Equal("alice", session.Username)
	s.Equal("alice@example.com", session.Email)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestRegisterPersistsCredential() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	cred, err := s.storage.GetCredential(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", cred.Username)
	s.NotEqual("password123", cred.PasswordHash)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	_, err := s.service.Register(s.ctx, "alice", "other@example.com", "different")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	session, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("alice", session.Username)
	s.Equal("alice@example.com", session.Email)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	_, err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

type brokenAccounts struct{ err error }

func (b brokenAccounts) Register(ctx context.Context, username, email, password string) error {
	return b.err
}

func (b brokenAccounts) Authenticate(ctx context.Context, username, password string) (*model.Credential, error) {
	return nil, b.err
}

func (s *ServiceSuite) TestLoginPassesThroughStorageErrors() {
	ioErr := errors.New("disk unavailable")
	svc := New(brokenAccounts{err: ioErr}, s.clock, s.random, DefaultConfig())

	_, err := svc.Login(s.ctx, "alice", "password123")
	s.ErrorIs(err, ioErr)
	s.NotErrorIs(err, ErrInvalidCredentials)
}

// ValidateSession tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	session, _ := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal("alice", validated.Username)
}

func (s *ServiceSuite) TestValidateSessionFailsWithInvalidToken() {
	_, err := s.service.ValidateSession("invalid_token")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsWhenExpired() {
	session, _ := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	// Advance time past expiration
	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// InvalidateSession tests

func (s *ServiceSuite) TestInvalidateSessionRemovesSession() {
	session, _ := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSessionNoopForUnknownToken() {
	s.service.InvalidateSession("unknown_token")
}

// CleanExpiredSessions tests

func (s *ServiceSuite) TestCleanExpiredSessionsRemovesExpired() {
	session1, _ := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	s.clock.Advance(25 * time.Hour)

	session2, _ := s.service.Login(s.ctx, "alice", "password123")

	s.Equal(1, s.service.CleanExpiredSessions())

	_, err := s.service.ValidateSession(session1.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(session2.Token)
	s.NoError(err)
}
