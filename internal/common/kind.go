package common

import "errors"

// Kind is a stable, machine-readable name for an error class. Transports put
// it into error payloads so callers can branch without parsing messages.
type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindUsernameTaken      Kind = "username_taken"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalidToken       Kind = "invalid_token"
	KindTokenExpired       Kind = "token_expired"
	KindUnauthorized       Kind = "unauthorized"
	KindInternal           Kind = "internal"
)

// KindOf classifies err. Anything not recognised is KindInternal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrorInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrorUsernameTaken), errors.Is(err, ErrorDuplicateUsername):
		return KindUsernameTaken
	case errors.Is(err, ErrorInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrTokenExpired):
		return KindTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return KindInvalidToken
	case errors.Is(err, ErrorUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// PublicMessage returns the message safe to show to a caller for err.
// Internal failures never leak their cause.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindInvalidInput:
		if errors.Is(err, ErrorPasswordTooLong) {
			return "password is too long"
		}
		return ErrorInvalidInput.Error()
	case KindUsernameTaken:
		return ErrorUsernameTaken.Error()
	case KindInvalidCredentials:
		return ErrorInvalidCredentials.Error()
	case KindTokenExpired:
		return ErrTokenExpired.Error()
	case KindInvalidToken:
		return ErrInvalidToken.Error()
	case KindUnauthorized:
		return ErrorUnauthorized.Error()
	default:
		return ErrorInternal.Error()
	}
}
