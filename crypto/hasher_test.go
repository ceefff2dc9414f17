package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSHA256HasherMatchesWebDigest(t *testing.T) {
	// sha256("password") as produced by crypto.subtle.digest + hex join.
	const want = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"

	got, err := SHA256Hasher{}.Hash("password")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, SHA256Hasher{}.Verify("password", want))
	assert.False(t, SHA256Hasher{}.Verify("Password", want))
}

func TestHashers(t *testing.T) {
	hashers := map[string]PasswordHasher{
		"sha256":   SHA256Hasher{},
		"bcrypt":   BcryptHasher{Cost: bcrypt.MinCost},
		"argon2id": Argon2Hasher{},
	}
	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("s3cret!")
			require.NoError(t, err)
			assert.NotEqual(t, "s3cret!", hash)
			assert.True(t, h.Verify("s3cret!", hash))
			assert.False(t, h.Verify("wrong", hash))
		})
	}
}

func TestArgon2HasherSalts(t *testing.T) {
	h1, err := Argon2Hasher{}.Hash("same")
	require.NoError(t, err)
	h2, err := Argon2Hasher{}.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "$argon2id$"))
	assert.False(t, Argon2Hasher{}.Verify("same", "not-an-argon-hash"))
	assert.False(t, Argon2Hasher{}.Verify("same", "$argon2id$missing-separator"))
}

func TestHasherByName(t *testing.T) {
	for name, want := range map[string]PasswordHasher{
		"":         SHA256Hasher{},
		"sha256":   SHA256Hasher{},
		"BCRYPT":   BcryptHasher{},
		"argon2id": Argon2Hasher{},
	} {
		got, err := HasherByName(name)
		require.NoError(t, err, name)
		assert.IsType(t, want, got, name)
	}

	_, err := HasherByName("md5")
	assert.Error(t, err)
}
