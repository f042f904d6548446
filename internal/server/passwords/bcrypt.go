package passwords

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxPasswordLen is the number of bytes bcrypt actually hashes.
const bcryptMaxPasswordLen = 72

// DefaultBcryptCost matches the cost the service has always used; on
// commodity hardware it takes roughly 50-100ms per hash.
const DefaultBcryptCost = 10

// BcryptHasher hashes with bcrypt. The salt and cost live inside the
// encoding, so Verify needs nothing but the stored string.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher validates cost. Zero selects DefaultBcryptCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{Cost: cost}, nil
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify never matches a plaintext longer than bcrypt hashes, since Hash
// refuses those. The comparison still runs so the rejection costs the same.
func (h *BcryptHasher) Verify(plaintext, encoded string) (bool, error) {
	pw := []byte(plaintext)
	tooLong := len(pw) > bcryptMaxPasswordLen
	if tooLong {
		pw = pw[:bcryptMaxPasswordLen]
	}

	err := bcrypt.CompareHashAndPassword([]byte(encoded), pw)
	switch {
	case err == nil:
		return !tooLong, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword),
		errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

func (h *BcryptHasher) Supports(encoded string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, p) {
			return true
		}
	}
	return false
}

func (h *BcryptHasher) NeedsRehash(encoded string) bool {
	cost, err := bcrypt.Cost([]byte(encoded))
	if err != nil {
		return true
	}
	return cost < h.Cost
}
