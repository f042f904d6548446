// Package common defines shared constants and sentinel errors used across
// client and server layers of GophAuth. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorDuplicateUsername = errors.New("duplicate username")

	// Service-level errors returned by the registration and authentication flows.
	ErrorInvalidInput       = errors.New("username and password are required")
	ErrorPasswordTooLong    = fmt.Errorf("%w: password is too long", ErrorInvalidInput)
	ErrorUsernameTaken      = errors.New("username is already taken")
	ErrorInvalidCredentials = errors.New("invalid username or password")
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")

	// Token verification outcomes.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
