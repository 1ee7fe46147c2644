package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	for _, pw := range []string{"pw1", "", "päss wörd", strings.Repeat("x", 200)} {
		hash, err := HashPassword(pw)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"), hash)
		assert.True(t, CheckPasswordHash(pw, hash), "password %q", pw)
		assert.False(t, CheckPasswordHash(pw+"x", hash), "password %q", pw)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckPasswordHash_Malformed(t *testing.T) {
	good, err := HashPassword("pw")
	require.NoError(t, err)
	parts := strings.Split(good, "$")

	bad := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$m=0,t=1,p=4$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$garbage$" + parts[4] + "$" + parts[5],
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$" + parts[5],
		"$argon2id$v=19$m=65536,t=1,p=4$" + parts[4] + "$",
		"$argon2id$v=19$m=65536,t=1,p=4$" + parts[4],
		"$2b$10$tooshort",
	}
	for _, h := range bad {
		assert.False(t, CheckPasswordHash("pw", h), "hash %q", h)
	}
}

func TestCheckPasswordHash_LegacyBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("legacy", string(hash)))
	assert.False(t, CheckPasswordHash("wrong", string(hash)))
}
