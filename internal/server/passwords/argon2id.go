package passwords

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2idParams tunes argon2id. The defaults follow the OWASP baseline.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2idParams returns m=64MiB, t=1, p=4 with 16 byte salts and 32
// byte keys.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		MemoryKiB:   64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Upper bounds accepted when decoding a stored hash, so a tampered row
// cannot make Verify allocate gigabytes.
const (
	maxArgon2MemoryKiB  = 1024 * 1024
	maxArgon2Iterations = 64
	maxArgon2KeyLength  = 1024
)

// Argon2idHasher hashes with argon2id and encodes in PHC string format.
type Argon2idHasher struct {
	Params Argon2idParams
}

// NewArgon2idHasher fills zero fields of p from DefaultArgon2idParams.
func NewArgon2idHasher(p Argon2idParams) (*Argon2idHasher, error) {
	d := DefaultArgon2idParams()
	if p.MemoryKiB == 0 {
		p.MemoryKiB = d.MemoryKiB
	}
	if p.Iterations == 0 {
		p.Iterations = d.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = d.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = d.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = d.KeyLength
	}
	if p.MemoryKiB > maxArgon2MemoryKiB || p.Iterations > maxArgon2Iterations || p.KeyLength > maxArgon2KeyLength {
		return nil, fmt.Errorf("argon2id parameters too large: m=%d t=%d key=%d", p.MemoryKiB, p.Iterations, p.KeyLength)
	}
	if p.SaltLength < 8 {
		return nil, fmt.Errorf("argon2id salt length %d too short", p.SaltLength)
	}
	return &Argon2idHasher{Params: p}, nil
}

func (h *Argon2idHasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.Params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2id salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.Params.Iterations, h.Params.MemoryKiB, h.Params.Parallelism, h.Params.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.Params.MemoryKiB,
		h.Params.Iterations,
		h.Params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2idHasher) Verify(plaintext, encoded string) (bool, error) {
	p, salt, want, err := decodeArgon2id(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(plaintext), salt, p.Iterations, p.MemoryKiB, p.Parallelism, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *Argon2idHasher) Supports(encoded string) bool {
	return strings.HasPrefix(encoded, "$argon2id$")
}

func (h *Argon2idHasher) NeedsRehash(encoded string) bool {
	p, _, _, err := decodeArgon2id(encoded)
	if err != nil {
		return true
	}
	return p.MemoryKiB < h.Params.MemoryKiB ||
		p.Iterations < h.Params.Iterations ||
		p.KeyLength < h.Params.KeyLength
}

// decodeArgon2id parses $argon2id$v=19$m=..,t=..,p=..$salt$key.
func decodeArgon2id(encoded string) (Argon2idParams, []byte, []byte, error) {
	var p Argon2idParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidHash
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Iterations, &threads); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if threads == 0 || threads > 255 || p.Iterations == 0 ||
		p.MemoryKiB > maxArgon2MemoryKiB || p.Iterations > maxArgon2Iterations {
		return p, nil, nil, ErrInvalidHash
	}
	p.Parallelism = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxArgon2KeyLength {
		return p, nil, nil, ErrInvalidHash
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
