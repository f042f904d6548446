package passwords

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidHash is returned when a stored hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash")
	// ErrUnsupportedAlgorithm is returned for encodings no hasher understands.
	ErrUnsupportedAlgorithm = errors.New("unsupported password hash algorithm")
	// ErrPasswordTooLong is returned by bcrypt for passwords over 72 bytes.
	ErrPasswordTooLong = errors.New("password too long")
)

// Algorithm names accepted in configuration.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Hasher hashes and verifies passwords. Implementations are safe for
// concurrent use and hold no mutable state.
type Hasher interface {
	// Hash returns a new encoding of plaintext using a fresh random salt.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches encoded. A mismatch is
	// (false, nil); an unparsable encoding is (false, ErrInvalidHash).
	Verify(plaintext, encoded string) (bool, error)

	// Supports reports whether encoded was produced by this algorithm.
	Supports(encoded string) bool

	// NeedsRehash reports whether encoded uses weaker parameters than the
	// hasher's current ones.
	NeedsRehash(encoded string) bool
}

// Multi hashes with Primary and verifies with whichever hasher supports the
// stored encoding.
type Multi struct {
	Primary Hasher
	Others  []Hasher
}

// NewMulti returns a Multi that writes with primary.
func NewMulti(primary Hasher, others ...Hasher) *Multi {
	return &Multi{Primary: primary, Others: others}
}

func (m *Multi) Hash(plaintext string) (string, error) {
	return m.Primary.Hash(plaintext)
}

func (m *Multi) Verify(plaintext, encoded string) (bool, error) {
	h := m.pick(encoded)
	if h == nil {
		return false, ErrUnsupportedAlgorithm
	}
	return h.Verify(plaintext, encoded)
}

func (m *Multi) Supports(encoded string) bool {
	return m.pick(encoded) != nil
}

// NeedsRehash is true when encoded was not written by Primary or uses
// weaker parameters than Primary's.
func (m *Multi) NeedsRehash(encoded string) bool {
	if !m.Primary.Supports(encoded) {
		return true
	}
	return m.Primary.NeedsRehash(encoded)
}

func (m *Multi) pick(encoded string) Hasher {
	if m.Primary.Supports(encoded) {
		return m.Primary
	}
	for _, h := range m.Others {
		if h.Supports(encoded) {
			return h
		}
	}
	return nil
}

// Config selects and tunes the hashing algorithm.
type Config struct {
	Algorithm  string
	BcryptCost int
	Argon2     Argon2idParams
}

// New builds a Multi whose primary algorithm is cfg.Algorithm and which can
// still verify hashes written by the other supported algorithm.
func New(cfg Config) (*Multi, error) {
	b, err := NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	a, err := NewArgon2idHasher(cfg.Argon2)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Algorithm) {
	case "", AlgorithmBcrypt:
		return NewMulti(b, a), nil
	case AlgorithmArgon2id:
		return NewMulti(a, b), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}
