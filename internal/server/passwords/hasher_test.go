package passwords

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fastArgon2 keeps argon2id tests quick while exercising the real code path.
var fastArgon2 = Argon2idParams{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newHashers(t *testing.T) map[string]Hasher {
	t.Helper()
	b, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	a, err := NewArgon2idHasher(fastArgon2)
	require.NoError(t, err)
	return map[string]Hasher{"bcrypt": b, "argon2id": a}
}

func TestHashers_SamePlaintextDistinctHashesBothVerify(t *testing.T) {
	for name, h := range newHashers(t) {
		t.Run(name, func(t *testing.T) {
			h1, err := h.Hash("s3cr3t!")
			require.NoError(t, err)
			h2, err := h.Hash("s3cr3t!")
			require.NoError(t, err)

			assert.NotEqual(t, h1, h2, "fresh salt per call")
			assert.NotContains(t, h1, "s3cr3t!")

			for _, enc := range []string{h1, h2} {
				ok, err := h.Verify("s3cr3t!", enc)
				require.NoError(t, err)
				assert.True(t, ok)
			}
		})
	}
}

func TestHashers_WrongPasswordIsMismatchNotError(t *testing.T) {
	for name, h := range newHashers(t) {
		t.Run(name, func(t *testing.T) {
			enc, err := h.Hash("right")
			require.NoError(t, err)

			ok, err := h.Verify("wrong", enc)
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = h.Verify("", enc)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHashers_MalformedHash(t *testing.T) {
	for name, h := range newHashers(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := h.Verify("pw", "not-a-hash")
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestBcrypt_EncodingIsSelfDescribing(t *testing.T) {
	h, err := NewBcryptHasher(5)
	require.NoError(t, err)

	enc, err := h.Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$2a$05$"), enc)
	assert.True(t, h.Supports(enc))
}

func TestBcrypt_CostBounds(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MaxCost + 1)
	require.Error(t, err)

	h, err := NewBcryptHasher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, h.Cost)
}

func TestBcrypt_TooLongPassword(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.True(t, errors.Is(err, ErrPasswordTooLong), "got %v", err)
}

func TestBcrypt_VerifyRejectsPasswordBeyond72Bytes(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	pw := strings.Repeat("a", 72)
	enc, err := h.Hash(pw)
	require.NoError(t, err)

	ok, err := h.Verify(pw, enc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(pw+"DIFFERENT-SUFFIX", enc)
	require.NoError(t, err)
	assert.False(t, ok, "bytes past 72 must not be ignored")

	m, err := New(Config{Algorithm: AlgorithmBcrypt, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	ok, err = m.Verify(pw+"x", enc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2id_EncodingIsSelfDescribing(t *testing.T) {
	h, err := NewArgon2idHasher(fastArgon2)
	require.NoError(t, err)

	enc, err := h.Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$v=19$m=8192,t=1,p=1$"), enc)
	assert.Len(t, strings.Split(enc, "$"), 6)
}

func TestArgon2id_RejectsHostileParameters(t *testing.T) {
	h, err := NewArgon2idHasher(fastArgon2)
	require.NoError(t, err)

	hostile := "$argon2id$v=19$m=4194304,t=1,p=1$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5a2V5"
	ok, err := h.Verify("pw", hostile)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestArgon2id_NeedsRehash(t *testing.T) {
	weak, err := NewArgon2idHasher(fastArgon2)
	require.NoError(t, err)
	enc, err := weak.Hash("pw")
	require.NoError(t, err)

	stronger := fastArgon2
	stronger.Iterations = 2
	strong, err := NewArgon2idHasher(stronger)
	require.NoError(t, err)

	assert.False(t, weak.NeedsRehash(enc))
	assert.True(t, strong.NeedsRehash(enc))
}

func TestMulti_VerifiesEitherAlgorithm(t *testing.T) {
	hs := newHashers(t)
	bcryptEnc, err := hs["bcrypt"].Hash("pw")
	require.NoError(t, err)
	argonEnc, err := hs["argon2id"].Hash("pw")
	require.NoError(t, err)

	m := NewMulti(hs["argon2id"], hs["bcrypt"])

	for _, enc := range []string{bcryptEnc, argonEnc} {
		ok, err := m.Verify("pw", enc)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	assert.True(t, m.NeedsRehash(bcryptEnc))
	assert.False(t, m.NeedsRehash(argonEnc))

	_, err = m.Verify("pw", "$unknown$abc")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestNew_SelectsPrimary(t *testing.T) {
	m, err := New(Config{Algorithm: AlgorithmArgon2id, BcryptCost: bcrypt.MinCost, Argon2: fastArgon2})
	require.NoError(t, err)
	enc, err := m.Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$"))

	m, err = New(Config{BcryptCost: bcrypt.MinCost, Argon2: fastArgon2})
	require.NoError(t, err)
	enc, err = m.Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$2a$"))

	_, err = New(Config{Algorithm: "md5"})
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
