package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := Password("Password123")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	require.NotEqual(t, "Password123", h)

	assert.True(t, Check(h, "Password123"))
	assert.False(t, Check(h, "WrongPass1"))
}

func TestPassword_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()

	h1, err := Password("Password123")
	require.NoError(t, err)
	h2, err := Password("Password123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, Check(h1, "Password123"))
	assert.True(t, Check(h2, "Password123"))
}

func TestCheck_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, Check("not-a-bcrypt-hash", "Password123"))
	assert.False(t, Check("", "Password123"))
}
