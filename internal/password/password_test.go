package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastArgon2() Hasher {
	return NewArgon2idWithParams(Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8})
}

func TestHashersRoundTrip(t *testing.T) {
	hashers := map[string]Hasher{
		AlgorithmBcrypt:   NewBcrypt(bcrypt.MinCost),
		AlgorithmArgon2id: fastArgon2(),
	}
	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			encoded, err := h.Hash("s3cret-pass")
			require.NoError(t, err)
			assert.NotEqual(t, "s3cret-pass", encoded)
			assert.True(t, IsUsable(encoded))

			assert.True(t, h.Verify("s3cret-pass", encoded))
			assert.False(t, h.Verify("wrong", encoded))

			empty, err := h.Hash("")
			require.NoError(t, err)
			assert.True(t, h.Verify("", empty))
		})
	}
}

func TestArgon2EncodingCarriesParams(t *testing.T) {
	encoded, err := fastArgon2().Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "argon2id$v=19$m=1024,t=1,p=1$"))

	// a hasher with a different policy still verifies old credentials
	assert.True(t, NewArgon2id().Verify("pw", encoded))
}

func TestVerifyRejectsForeignEncodings(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)
	a := fastArgon2()

	bEncoded, err := b.Hash("pw")
	require.NoError(t, err)
	aEncoded, err := a.Hash("pw")
	require.NoError(t, err)

	assert.False(t, a.Verify("pw", bEncoded))
	assert.False(t, b.Verify("pw", aEncoded))
	assert.False(t, a.Verify("pw", "argon2id$garbage"))
}

func TestUnusable(t *testing.T) {
	u := Unusable()
	assert.True(t, strings.HasPrefix(u, "!"))
	assert.Len(t, u, 33)
	assert.False(t, IsUsable(u))
	assert.False(t, IsUsable(""))
	assert.NotEqual(t, u, Unusable())

	assert.False(t, NewBcrypt(bcrypt.MinCost).Verify("", u))
	assert.False(t, fastArgon2().Verify("", u))
}

func TestNew(t *testing.T) {
	h, err := New("", 0)
	require.NoError(t, err)
	assert.IsType(t, &bcryptHasher{}, h)
	assert.Equal(t, bcrypt.DefaultCost, h.(*bcryptHasher).cost)

	h, err = New("Argon2id", 0)
	require.NoError(t, err)
	assert.IsType(t, &argon2Hasher{}, h)

	_, err = New("md5", 0)
	require.Error(t, err)
}
