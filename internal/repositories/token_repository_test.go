package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("some-raw-refresh-token")
	b := HashToken("some-raw-refresh-token")
	assert.Equal(t, a, b)

	// SHA-256 hex digest.
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]+$", a)
}

func TestHashTokenDiffersPerInput(t *testing.T) {
	assert.NotEqual(t, HashToken("token-a"), HashToken("token-b"))
}
