package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_IsDeterministicLowercaseHex(t *testing.T) {
	// SHA-256("secret1"), precomputed
	assert.Equal(t,
		"5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6",
		Hash("secret1"))

	assert.Equal(t, Hash("hello"), Hash("hello"))
	assert.Len(t, Hash(""), 64)
}

func TestVerify_RoundTrip(t *testing.T) {
	for _, p := range []string{"", "secret1", "пароль", "a very long password with spaces"} {
		assert.True(t, Verify(p, Hash(p)), "verify(p, hash(p)) must hold for %q", p)
	}
}

func TestVerify_Mismatch(t *testing.T) {
	assert.False(t, Verify("secret1", Hash("secret2")))
	assert.False(t, Verify("secret1", "not-a-digest"))
	assert.False(t, Verify("secret1", ""))
}

func TestVerify_BcryptDigests(t *testing.T) {
	digest, err := HashBcrypt("secret1")
	require.NoError(t, err)

	assert.True(t, Verify("secret1", digest))
	assert.False(t, Verify("secret2", digest))
}

func TestHashWithScheme(t *testing.T) {
	d, err := HashWithScheme("secret1", SchemeSHA256)
	require.NoError(t, err)
	assert.Equal(t, Hash("secret1"), d)

	d, err = HashWithScheme("secret1", SchemeBcrypt)
	require.NoError(t, err)
	assert.True(t, Verify("secret1", d))

	// unknown scheme falls back to sha256
	d, err = HashWithScheme("secret1", Scheme("whatever"))
	require.NoError(t, err)
	assert.Equal(t, Hash("secret1"), d)
}
