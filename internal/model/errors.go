package model

import "errors"

// Common errors used across the application
var (
	// Credential errors
	ErrAlreadyExists      = errors.New("username already exists")
	ErrNotFound           = errors.New("user not found")
	ErrMismatch           = errors.New("password does not match")
	ErrCredentialNotFound = errors.New("credential document not found")

	// Activity log errors
	ErrLogNotFound     = errors.New("activity log document not found")
	ErrCorruptDocument = errors.New("document is corrupt")
	ErrIndexOutOfRange = errors.New("goal index out of range")
	ErrUnknownCategory = errors.New("unknown activity category")
	ErrInvalidEntry    = errors.New("invalid activity entry")
)
