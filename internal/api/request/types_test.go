package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/progressjournal/internal/model"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	assert.NoError(t, valid.Validate())

	cases := map[string]RegisterRequest{
		"missing username":  {Email: "a@b.c", Password: "secret1"},
		"missing email":     {Username: "alice", Password: "secret1"},
		"missing password":  {Username: "alice", Email: "a@b.c"},
		"email without at":  {Username: "alice", Email: "alice.example.com", Password: "secret1"},
		"email without dot": {Username: "alice", Email: "alice@example", Password: "secret1"},
		"short password":    {Username: "alice", Email: "a@b.c", Password: "12345"},
	}
	for name, req := range cases {
		assert.Error(t, req.Validate(), name)
	}
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Username: "alice", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Username: "alice"}.Validate())
	assert.Error(t, LoginRequest{Password: "x"}.Validate())
}

func TestDecodeEntryGoalIgnoresStatusAndTimestamp(t *testing.T) {
	body := `{"goal":"learn Go","status":"Completed","timestamp":"1999-01-01 00:00:00"}`

	entry, err := DecodeEntry(strings.NewReader(body), model.CategoryGoals)
	require.NoError(t, err)

	goal := entry.(*model.GoalEntry)
	assert.Equal(t, "learn Go", goal.Goal)
	assert.Equal(t, model.GoalInProgress, goal.Status)
	assert.Empty(t, goal.Timestamp)
}

func TestDecodeEntryValidates(t *testing.T) {
	_, err := DecodeEntry(strings.NewReader(`{"mistake":"m"}`), model.CategoryMistakes)
	assert.ErrorIs(t, err, model.ErrInvalidEntry)

	_, err = DecodeEntry(strings.NewReader(`{"challenge":"c","notes":"n"}`), model.CategoryChallenges)
	assert.NoError(t, err)
}

func TestDecodeEntryUnknownCategory(t *testing.T) {
	_, err := DecodeEntry(strings.NewReader(`{}`), model.Category("achievements"))
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestDecodeEntryMalformedBody(t *testing.T) {
	_, err := DecodeEntry(strings.NewReader(`{`), model.CategoryGoals)
	assert.Error(t, err)
}
