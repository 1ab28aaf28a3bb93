package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/progressjournal/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
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

// Activity log tests

func (s *StorageSuite) TestSaveAndGetActivityLog() {
	log := model.NewActivityLog()
	log.Goals = append(log.Goals, model.GoalEntry{Goal: "learn go", Status: model.GoalInProgress, Timestamp: "2024-01-01 12:00:00"})

	err := s.storage.SaveActivityLog(s.ctx, "alice", log)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetActivityLog(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(log, retrieved)
}

func (s *StorageSuite) TestSavedLogIsIsolatedFromCaller() {
	log := model.NewActivityLog()
	_ = s.storage.SaveActivityLog(s.ctx, "alice", log)

	log.Goals = append(log.Goals, model.GoalEntry{Goal: "not saved"})

	retrieved, err := s.storage.GetActivityLog(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(retrieved.Goals)
}

func (s *StorageSuite) TestGetActivityLogNotFound() {
	_, err := s.storage.GetActivityLog(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrLogNotFound)
}

func (s *StorageSuite) TestGetActivityLogCorrupt() {
	s.storage.PutRawActivityLog("alice", []byte("{not json"))

	_, err := s.storage.GetActivityLog(s.ctx, "alice")
	s.ErrorIs(err, model.ErrCorruptDocument)
}

func (s *StorageSuite) TestGetActivityLogNormalizesPartialDocument() {
	s.storage.PutRawActivityLog("alice", []byte(`{"goals":[{"goal":"a","status":"Completed","timestamp":"t"}]}`))

	retrieved, err := s.storage.GetActivityLog(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(retrieved.Goals, 1)
	s.NotNil(retrieved.Reflections)
	s.NotNil(retrieved.Achievements)
}
