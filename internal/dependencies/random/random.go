package random

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// Random provides randomness that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Token returns an unguessable opaque string starting with prefix
	Token(prefix string) string
}

// tokenBytes is the entropy carried by each token
const tokenBytes = 24

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

// Token returns prefix followed by base64url-encoded random bytes
func (r *CryptoRandom) Token(prefix string) string {
	b := make([]byte, tokenBytes)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
