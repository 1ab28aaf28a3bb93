package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidEntry       = "INVALID_ENTRY"
	CodeUnknownCategory    = "UNKNOWN_CATEGORY"
	CodeGoalNotFound       = "GOAL_NOT_FOUND"
	CodeCorruptJournal     = "CORRUPT_JOURNAL"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Unknown user and wrong password look the same from outside
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrMismatch),
		errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, model.ErrAlreadyExists),
		errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	// Journal errors
	case errors.Is(err, model.ErrIndexOutOfRange):
		return &httpError{http.StatusConflict, APIError{CodeGoalNotFound, "Goal no longer exists, refresh"}}
	case errors.Is(err, model.ErrUnknownCategory):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownCategory, "Unknown journal category"}}
	case errors.Is(err, model.ErrInvalidEntry):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidEntry, err.Error()}}
	case errors.Is(err, model.ErrCorruptDocument):
		return &httpError{http.StatusConflict, APIError{CodeCorruptJournal, "Journal document is unreadable"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
