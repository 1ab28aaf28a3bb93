package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntnStaysInRange(t *testing.T) {
	r := New()
	for i := 0; i < 100; i++ {
		v := r.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestTokenIsPrefixedAndUnique(t *testing.T) {
	r := New()
	a := r.Token("sess_")
	b := r.Token("sess_")

	assert.True(t, strings.HasPrefix(a, "sess_"))
	assert.Len(t, a, len("sess_")+32)
	assert.NotEqual(t, a, b)
}
