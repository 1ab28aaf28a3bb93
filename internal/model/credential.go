package model

// Credential is the login record for a user, keyed by username
// PasswordHash holds a bcrypt hash, never the plaintext password
type Credential struct {
	Username     string `json:"username"` // storage key (immutable)
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}
