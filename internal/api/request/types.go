package request

import (
	"errors"
	"fmt"
	"strings"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration form rules
func (r RegisterRequest) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return errors.New("username, email and password are required")
	}
	if !strings.Contains(r.Email, "@") || !strings.Contains(r.Email, ".") {
		return errors.New("email must be a valid address")
	}
	if len(r.Password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks both fields are present
func (r LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return errors.New("username and password are required")
	}
	return nil
}
