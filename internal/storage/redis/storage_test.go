package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/progressjournal/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Credential tests

func (s *StorageSuite) TestCreateAndGetCredential() {
	cred := &model.Credential{Username: "alice", Email: "alice@example.com", PasswordHash: "hash123"}

	err := s.storage.CreateCredential(s.ctx, cred)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCredential(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(*cred, *retrieved)
}

func (s *StorageSuite) TestCreateCredentialRejectsExisting() {
	_ = s.storage.CreateCredential(s.ctx, &model.Credential{Username: "alice", Email: "first@example.com"})

	err := s.storage.CreateCredential(s.ctx, &model.Credential{Username: "alice", Email: "second@example.com"})
	s.ErrorIs(err, model.ErrAlreadyExists)

	retrieved, err := s.storage.GetCredential(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("first@example.com", retrieved.Email)
}

func (s *StorageSuite) TestGetCredentialNotFound() {
	_, err := s.storage.GetCredential(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

func (s *StorageSuite) TestCredentialExists() {
	_ = s.storage.CreateCredential(s.ctx, &model.Credential{Username: "alice"})

	exists, err := s.storage.CredentialExists(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.CredentialExists(s.ctx, "bob")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestCredentialNoTTL() {
	_ = s.storage.CreateCredential(s.ctx, &model.Credential{Username: "alice"})

	ttl := s.mini.TTL(credentialKey("alice"))
	s.Equal(time.Duration(0), ttl, "Credential should not have TTL")
}

// Activity log tests

func (s *StorageSuite) TestSaveAndGetActivityLog() {
	log := model.NewActivityLog()
	log.Challenges = append(log.Challenges, model.ChallengeEntry{Challenge: "c", Notes: "n", Timestamp: "2024-01-01 12:00:00"})

	err := s.storage.SaveActivityLog(s.ctx, "alice", log)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetActivityLog(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(log, retrieved)
}

func (s *StorageSuite) TestGetActivityLogNotFound() {
	_, err := s.storage.GetActivityLog(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrLogNotFound)
}

func (s *StorageSuite) TestGetActivityLogCorrupt() {
	s.Require().NoError(s.mini.Set(activityLogKey("alice"), "not-json"))

	_, err := s.storage.GetActivityLog(s.ctx, "alice")
	s.ErrorIs(err, model.ErrCorruptDocument)
}

func (s *StorageSuite) TestStorageUnavailable() {
	s.mini.Close()

	_, err := s.storage.GetActivityLog(s.ctx, "alice")
	s.Error(err)
	s.NotErrorIs(err, model.ErrLogNotFound)
}
