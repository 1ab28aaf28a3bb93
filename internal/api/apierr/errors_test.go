package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/services/auth"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{model.ErrNotFound, http.StatusUnauthorized},
		{model.ErrMismatch, http.StatusUnauthorized},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrInvalidSession, http.StatusUnauthorized},
		{model.ErrAlreadyExists, http.StatusConflict},
		{auth.ErrUsernameExists, http.StatusConflict},
		{fmt.Errorf("complete: %w", model.ErrIndexOutOfRange), http.StatusConflict},
		{model.ErrUnknownCategory, http.StatusNotFound},
		{model.ErrInvalidEntry, http.StatusBadRequest},
		{model.ErrCorruptDocument, http.StatusConflict},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, Status(tc.err), tc.err.Error())
	}
}

func TestWriteErrorBody(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, model.ErrIndexOutOfRange)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeGoalNotFound, resp.Error.Code)
	assert.Equal(t, "Goal no longer exists, refresh", resp.Error.Message)
}

func TestUnknownUserAndWrongPasswordAreIndistinguishable(t *testing.T) {
	a := httptest.NewRecorder()
	WriteError(a, model.ErrNotFound)
	b := httptest.NewRecorder()
	WriteError(b, model.ErrMismatch)

	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}
