package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, Verify(digest, "correct horse battery staple"))
	assert.False(t, Verify(digest, "wrong password"))
	assert.False(t, Verify(digest, ""))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same password")
	require.NoError(t, err)
	second, err := Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify(first, "same password"))
	assert.True(t, Verify(second, "same password"))
}

func TestVerifyMalformedDigest(t *testing.T) {
	assert.False(t, Verify("not a bcrypt digest", "anything"))
	assert.False(t, Verify("", "anything"))
}
