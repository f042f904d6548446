// Package auth issues and verifies the signed, time-bounded access tokens
// handed to clients after a successful login.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity facts carried by an access token.
type Claims struct {
	Subject   int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the JWT wire form: sub, username, iat, exp.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Issuer signs tokens with an HMAC secret held for the process lifetime.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises an Issuer.
type Option func(*Issuer)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// ErrEmptySecret is returned by NewIssuer for a zero-length secret.
var ErrEmptySecret = errors.New("token signing secret is empty")

// NewIssuer returns an Issuer for secret and ttl. A non-positive ttl falls
// back to common.DefaultAccessTokenTTL.
func NewIssuer(secret []byte, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = common.DefaultAccessTokenTTL
	}
	i := &Issuer{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, o := range opts {
		o(i)
	}
	return i, nil
}

// TTL is the validity window applied to every issued token.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for c.Subject and c.Username. IssuedAt and ExpiresAt are
// computed here and returned in the filled-in claims.
func (i *Issuer) Issue(c Claims) (string, Claims, error) {
	now := i.now().Truncate(time.Second)
	c.IssuedAt = now
	c.ExpiresAt = now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(c.Subject, 10),
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		Username: c.Username,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, c, nil
}

// Verify checks the signature and expiry of tokenString. It returns
// common.ErrInvalidToken for anything malformed, badly signed or missing an
// expiry, and common.ErrTokenExpired once now is strictly after the expiry.
// A token is still valid at the exact expiry instant.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	tc := &tokenClaims{}

	_, err := jwt.ParseWithClaims(tokenString, tc, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	now := i.now()
	if tc.ExpiresAt == nil {
		return nil, common.ErrInvalidToken
	}
	if tc.IssuedAt != nil && tc.IssuedAt.Time.After(now) {
		return nil, common.ErrInvalidToken
	}
	if now.After(tc.ExpiresAt.Time) {
		return nil, common.ErrTokenExpired
	}

	sub, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil || sub <= 0 {
		return nil, common.ErrInvalidToken
	}

	c := &Claims{
		Subject:   sub,
		Username:  tc.Username,
		ExpiresAt: tc.ExpiresAt.Time,
	}
	if tc.IssuedAt != nil {
		c.IssuedAt = tc.IssuedAt.Time
	}
	return c, nil
}
