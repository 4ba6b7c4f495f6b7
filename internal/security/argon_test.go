package security

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the tests fast
func testHasher() *ArgonHash {
	h := New()
	h.Memory = 1024
	h.Iterations = 1
	h.Parallelism = 1
	return h
}

func TestHash_RoundTrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("p1-secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := h.Verify("p1-secret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_SaltedPerCall(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHash_FitsPasswordColumn(t *testing.T) {
	encoded, err := New().Hash("a fairly long password with spaces and symbols !@#$%^&*()")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(encoded), models.MaxPasswordLength)
}

func TestVerify_Malformed(t *testing.T) {
	h := testHasher()

	for _, bad := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$!!!",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		assert.NotPanics(t, func() {
			_, err := h.Verify("x", bad)
			assert.ErrorIs(t, err, ErrInvalidHash, "input %q", bad)
		}, "input %q", bad)
	}
}
